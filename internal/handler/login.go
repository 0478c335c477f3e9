package handler

import (
	"BotDisk/config"
	"BotDisk/internal/dto"
	"BotDisk/utils"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var adminHashOnce sync.Once
var adminPassHash string

// Login authenticates the operator and returns a session token. The token
// is also set as a cookie so browser clients pass the gate after the
// login redirect.
func Login(c *gin.Context) {
	var loginRequest dto.LoginRequest
	if err := c.ShouldBind(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	adminHashOnce.Do(func() {
		adminPassHash = utils.GetPwd(config.AppConfig.AdminPass)
	})
	if loginRequest.Username != config.AppConfig.AdminUser ||
		!utils.CheckPwd(loginRequest.Password, adminPassHash) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong username or password"})
		return
	}
	token, err := utils.GenerateToken(loginRequest.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.SetCookie("token", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"token":   token,
	})
}
