package handler

import (
	"BotDisk/config"
	"BotDisk/internal/repo"
	"BotDisk/internal/service"
	"BotDisk/internal/storage"
	"BotDisk/model"
	"BotDisk/utils"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

var testDBOnce sync.Once
var testDBReady bool

func requireTestDB(t *testing.T) {
	t.Helper()
	testDBOnce.Do(func() {
		config.InitConfig()
		addr := net.JoinHostPort(config.AppConfig.DBHost, config.AppConfig.DBPort)
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err != nil {
			return
		}
		conn.Close()
		repo.InitMysqlTest()
		testDBReady = true
	})
	if !testDBReady {
		t.Skip("mysql not reachable")
	}
}

var testRedisOnce sync.Once
var testRedisReady bool

func requireTestRedis(t *testing.T) {
	t.Helper()
	testRedisOnce.Do(func() {
		addr := net.JoinHostPort(config.AppConfig.RedisHost, config.AppConfig.RedisPort)
		conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
		if err != nil {
			return
		}
		conn.Close()
		repo.InitRedis()
		utils.InitCacheManager()
		testRedisReady = true
	})
	if !testRedisReady {
		t.Skip("redis not reachable")
	}
}

type countingStore struct {
	resolveCalls int
	removeErr    error
	body         []byte
}

func (s *countingStore) Put(ctx context.Context, reader io.Reader, size int64, fileName string, class storage.Classification) (storage.Handle, error) {
	return storage.Handle{ObjectID: "obj", MessageRef: 1}, nil
}

func (s *countingStore) Resolve(ctx context.Context, objectID string) ([]byte, error) {
	s.resolveCalls++
	return s.body, nil
}

func (s *countingStore) Remove(ctx context.Context, h storage.Handle) error {
	return s.removeErr
}

func insertFlowRecord(t *testing.T, origin, fileName string) *model.FileRecord {
	t.Helper()
	record := &model.FileRecord{
		URL:       service.BuildFileURL(origin, time.Now().UnixNano(), storage.ExtOf(fileName)),
		FileID:    "obj-" + fileName,
		MessageID: 1,
		CreatedAt: service.FormatCreatedAt(time.Now()),
		FileName:  fileName,
		MimeType:  storage.Classify(storage.ExtOf(fileName)).MimeType,
	}
	if err := service.CreateFileRecord(record); err != nil {
		t.Fatalf("CreateFileRecord: %v", err)
	}
	t.Cleanup(func() {
		repo.Db.Where("url = ?", record.URL).Delete(&model.FileRecord{})
	})
	return record
}

func deleteViaEndpoint(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/delete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteEndpointOutcomeMessages(t *testing.T) {
	requireTestDB(t)
	old := storage.Default
	defer func() { storage.Default = old }()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/delete", Delete)

	cases := []struct {
		removeErr   error
		wantMessage string
	}{
		{nil, "file deleted"},
		{
			&storage.BackendError{Kind: storage.KindUpstream, Op: "deleteMessage", Err: errors.New("boom")},
			"file deleted; backend removal failed",
		},
		{
			&storage.BackendError{Kind: storage.KindAlreadyRemoved, Op: "deleteMessage", Err: errors.New("gone")},
			"file deleted; object was already removed upstream",
		},
	}
	for _, c := range cases {
		storage.Default = &countingStore{removeErr: c.removeErr}
		record := insertFlowRecord(t, "http://delete-test.example.com", "a.png")

		w := deleteViaEndpoint(t, r, record.URL)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
		}
		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.Message != c.wantMessage {
			t.Errorf("response = %+v, want message %q", resp, c.wantMessage)
		}
	}
}

func TestDeleteEndpointSecondDeleteIs404(t *testing.T) {
	requireTestDB(t)
	old := storage.Default
	defer func() { storage.Default = old }()
	storage.Default = &countingStore{}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/delete", Delete)

	record := insertFlowRecord(t, "http://delete-test.example.com", "twice.png")

	if w := deleteViaEndpoint(t, r, record.URL); w.Code != http.StatusOK {
		t.Fatalf("first delete status = %d, want 200", w.Code)
	}

	w := deleteViaEndpoint(t, r, record.URL)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"] != "文件不存在" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestServeFileSecondRequestHitsCache(t *testing.T) {
	requireTestDB(t)
	requireTestRedis(t)
	oldStore := storage.Default
	oldOrigin := config.AppConfig.PublicOrigin
	defer func() {
		storage.Default = oldStore
		config.AppConfig.PublicOrigin = oldOrigin
	}()

	config.AppConfig.PublicOrigin = "http://cache-test.example.com"
	store := &countingStore{body: []byte("cached-bytes")}
	storage.Default = store

	record := insertFlowRecord(t, config.AppConfig.PublicOrigin, "hot.png")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(ServeFile)

	tail := record.URL[len(config.AppConfig.PublicOrigin):]
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tail, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d (body: %s)", i, w.Code, w.Body.String())
		}
		if w.Body.String() != "cached-bytes" {
			t.Fatalf("request %d: body = %q", i, w.Body.String())
		}
	}
	if store.resolveCalls != 1 {
		t.Errorf("resolveCalls = %d, want 1 (second request must come from cache)", store.resolveCalls)
	}
}
