package utils

import (
	"BotDisk/config"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates mutating and listing routes. An unauthorized request
// is redirected to the login surface, never answered with a bare 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.AuthEnabled {
			c.Next()
			return
		}
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			redirectToLogin(c)
			return
		}
		claims, err := VerifyToken(token)
		if err != nil {
			redirectToLogin(c)
			return
		}
		c.Set("username", claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}
	return tokenParts[1]
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, config.AppConfig.LoginPath)
	c.Abort()
}
