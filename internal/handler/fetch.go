package handler

import (
	"BotDisk/internal/dto"
	"BotDisk/internal/service"
	"BotDisk/internal/task"
	"net/http"
	neturl "net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// FetchFromURL creates an async task that downloads a remote file and
// relays it into the blob backend.
func FetchFromURL(c *gin.Context) {
	var req dto.FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := service.ValidateFetchSourceURL(req.URL); err != nil {
		msg := err.Error()
		if msg == "host not allowed" || msg == "ip not allowed" {
			msg = msg + "; for local/private testing set FETCH_ALLOW_PRIVATE=true"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		fileName = inferFileNameFromURL(req.URL)
	}
	if fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_name required"})
		return
	}

	fetchTask, err := task.CreateFetchTask(req.URL, fileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "fetch task created", "task_id": fetchTask.ID})
}

// ListFetchTasks lists recent fetch tasks.
func ListFetchTasks(c *gin.Context) {
	tasks, err := task.ListFetchTasks(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func inferFileNameFromURL(rawURL string) string {
	parsed, err := neturl.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	base := strings.TrimSpace(path.Base(parsed.Path))
	if base == "" || base == "." || base == "/" {
		return ""
	}
	return base
}
