package handler

import (
	"BotDisk/config"
	"BotDisk/internal/service"
	"BotDisk/internal/storage"
	"BotDisk/utils"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ServeFile is the public read path. The edge cache is consulted first and
// a hit is returned verbatim; on a miss the index resolves the URL to a
// backend handle and the fetched bytes are cached for next time. Errors on
// this path are deliberately generic: arbitrary requesters never see
// backend detail.
func ServeFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "not found")
		return
	}

	ctx := c.Request.Context()
	requestURL := requestFullURL(c)

	if cached, ok := utils.GetCachedResponse(ctx, requestURL); ok {
		writeFileResponse(c, cached)
		return
	}

	record, err := service.GetFileRecordByURL(requestURL)
	if err != nil {
		if service.IsRecordNotFound(err) {
			c.String(http.StatusNotFound, "file not found")
		} else {
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	data, mimeType, err := service.ResolveFileBytes(ctx, record)
	if err != nil {
		if storage.KindOf(err) == storage.KindNotFound {
			c.String(http.StatusNotFound, "file not found")
		} else {
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	response := &utils.CachedFile{
		Body:        data,
		ContentType: mimeType,
		FileName:    record.FileName,
	}
	_ = utils.SetCachedResponse(ctx, requestURL, response, config.AppConfig.CacheTTL)
	writeFileResponse(c, response)
}

// requestFullURL rebuilds the exact URL the client requested, query string
// included, so two distinct request URLs never share a cache entry.
func requestFullURL(c *gin.Context) string {
	requestURL := requestOrigin(c) + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		requestURL += "?" + c.Request.URL.RawQuery
	}
	return requestURL
}

func writeFileResponse(c *gin.Context, file *utils.CachedFile) {
	name := utils.SanitizeHeaderFilename(file.FileName)
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
