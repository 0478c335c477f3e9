package router

import (
	"BotDisk/internal/handler"
	"BotDisk/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes. Everything not matched by a route is
// treated as a public file URL.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	r.POST("/login", handler.Login)

	auth := r.Group("")
	auth.Use(utils.AuthMiddleware())
	{
		auth.POST("/upload", handler.Upload)
		auth.POST("/delete", handler.Delete)
		auth.POST("/search", handler.Search)
		auth.GET("/files", handler.ListFiles)
		auth.POST("/fetch", handler.FetchFromURL)
		auth.GET("/fetch/tasks", handler.ListFetchTasks)
		auth.POST("/share/email", handler.ShareByEmail)
	}

	r.NoRoute(handler.ServeFile)
	return r
}
