package handler

import (
	"BotDisk/internal/dto"
	"BotDisk/internal/service"
	"BotDisk/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShareByEmail mails a file's public URL to a recipient. The record must
// exist; the mail carries the URL only, not the bytes.
func ShareByEmail(c *gin.Context) {
	var req dto.ShareMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	record, err := service.GetFileRecordByURL(req.URL)
	if err != nil {
		if service.IsRecordNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := utils.SendFileLinkMail(req.To, record.URL, record.FileName); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"sent_to": req.To})
}
