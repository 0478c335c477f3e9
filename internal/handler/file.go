package handler

import (
	"BotDisk/config"
	"BotDisk/internal/dto"
	"BotDisk/internal/service"
	"BotDisk/model"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requestOrigin returns the public origin for this request: the configured
// one when set, otherwise inferred from the incoming request. Computed per
// request and passed down, never stored globally.
func requestOrigin(c *gin.Context) string {
	if config.AppConfig.PublicOrigin != "" {
		return config.AppConfig.PublicOrigin
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

// Upload stores a multipart file in the blob backend and indexes it under
// a fresh canonical URL.
func Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.UploadResponse{
			Status: 0,
			Msg:    "upload failed",
			Error:  "no file in request",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.UploadResponse{
			Status: 0,
			Msg:    "upload failed",
			Error:  err.Error(),
		})
		return
	}
	defer file.Close()

	record, err := service.UploadFile(
		c.Request.Context(),
		requestOrigin(c),
		fileHeader.Filename,
		file,
		fileHeader.Size,
	)
	if err != nil {
		c.JSON(service.UploadErrorStatus(err), dto.UploadResponse{
			Status: 0,
			Msg:    "upload failed",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Status: 1,
		Msg:    "ok",
		URL:    record.URL,
	})
}

// Delete removes a file. The index row always goes; the backend-side
// outcome is reported in the message.
func Delete(c *gin.Context) {
	var req dto.DeleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	outcome, err := service.DeleteFile(c.Request.Context(), req.URL)
	if err != nil {
		if service.IsRecordNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete file failed: " + err.Error()})
		return
	}

	message := "file deleted"
	switch outcome {
	case service.BackendDeleteFailed:
		message = "file deleted; backend removal failed"
	case service.BackendAlreadyGone:
		message = "file deleted; object was already removed upstream"
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{
		Success: true,
		Message: message,
	})
}

// Search returns records whose display name contains the query.
func Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	files, err := service.SearchFileRecords(req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed: " + err.Error()})
		return
	}
	if files == nil {
		files = []model.FileRecord{}
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Files: files})
}

// ListFiles returns every record, newest first.
func ListFiles(c *gin.Context) {
	files, err := service.ListFileRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list files failed: " + err.Error()})
		return
	}
	if files == nil {
		files = []model.FileRecord{}
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Files: files})
}
