package handler

import (
	"BotDisk/config"
	"BotDisk/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type failingStore struct {
	kind storage.ErrorKind
}

func (s *failingStore) Put(ctx context.Context, reader io.Reader, size int64, fileName string, class storage.Classification) (storage.Handle, error) {
	return storage.Handle{}, &storage.BackendError{Kind: s.kind, Op: "sendDocument", Err: errors.New("boom")}
}

func (s *failingStore) Resolve(ctx context.Context, objectID string) ([]byte, error) {
	return nil, &storage.BackendError{Kind: s.kind, Op: "getFile", Err: errors.New("boom")}
}

func (s *failingStore) Remove(ctx context.Context, h storage.Handle) error {
	return &storage.BackendError{Kind: s.kind, Op: "deleteMessage", Err: errors.New("boom")}
}

func newUploadRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", Upload)
	return r
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := newUploadRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "no file in request" {
		t.Errorf("error = %v, want no file in request", resp["error"])
	}
}

func TestUploadBackendStatusMapping(t *testing.T) {
	old := storage.Default
	defer func() { storage.Default = old }()

	cases := []struct {
		kind storage.ErrorKind
		want int
	}{
		{storage.KindUpstream, http.StatusBadGateway},
		{storage.KindUnreachable, http.StatusGatewayTimeout},
		{storage.KindMissingID, http.StatusInternalServerError},
	}
	for _, c := range cases {
		storage.Default = &failingStore{kind: c.kind}
		r := newUploadRouter()

		body, contentType := multipartUpload(t, "a.pdf", "payload")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		if w.Code != c.want {
			t.Errorf("kind %v: status = %d, want %d", c.kind, w.Code, c.want)
		}
	}
}

func TestRequestOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	oldOrigin := config.AppConfig.PublicOrigin
	defer func() { config.AppConfig.PublicOrigin = oldOrigin }()

	run := func(setup func(*http.Request)) string {
		var got string
		r := gin.New()
		r.GET("/probe", func(c *gin.Context) {
			got = requestOrigin(c)
			c.Status(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Host = "relay.example.com"
		if setup != nil {
			setup(req)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	config.AppConfig.PublicOrigin = ""
	if got := run(nil); got != "http://relay.example.com" {
		t.Errorf("plain request origin = %q", got)
	}
	if got := run(func(req *http.Request) {
		req.Header.Set("X-Forwarded-Proto", "https")
	}); got != "https://relay.example.com" {
		t.Errorf("forwarded-proto origin = %q", got)
	}

	config.AppConfig.PublicOrigin = "https://cdn.example.net"
	if got := run(nil); got != "https://cdn.example.net" {
		t.Errorf("configured origin = %q", got)
	}
}
