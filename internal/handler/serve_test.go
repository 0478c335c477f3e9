package handler

import (
	"BotDisk/config"
	"BotDisk/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestServeFileRejectsNonReadMethods(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(ServeFile)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/1700000000123.png", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", method, w.Code)
		}
	}
}

func TestRequestFullURLKeepsQueryString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	oldOrigin := config.AppConfig.PublicOrigin
	defer func() { config.AppConfig.PublicOrigin = oldOrigin }()
	config.AppConfig.PublicOrigin = "https://relay.example.com"

	var got string
	r := gin.New()
	r.NoRoute(func(c *gin.Context) {
		got = requestFullURL(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/1700000000123.png?download=1", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got != "https://relay.example.com/1700000000123.png?download=1" {
		t.Errorf("requestFullURL = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/1700000000123.png", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got != "https://relay.example.com/1700000000123.png" {
		t.Errorf("requestFullURL without query = %q", got)
	}
}

func TestWriteFileResponseHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", func(c *gin.Context) {
		writeFileResponse(c, &utils.CachedFile{
			Body:        []byte("png-bytes"),
			ContentType: "image/png",
			FileName:    "照片 report.png",
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=31536000, immutable" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "inline; filename*=UTF-8''%E7%85%A7%E7%89%87%20report.png" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if w.Body.String() != "png-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}
