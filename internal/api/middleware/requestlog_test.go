package middleware

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/monitool/backend/internal/config"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.APIRequestLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// newLoggedRouter records in seen how many body bytes the handler read,
// so tests can check the middleware leaves the stream intact.
func newLoggedRouter(db *gorm.DB, cfg config.RequestLogConfig, seen *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLog(db, cfg))
	r.POST("/api/v1/echo", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		if seen != nil {
			*seen = len(data)
		}
		c.JSON(http.StatusOK, gin.H{"echo": true})
	})
	r.GET("/up", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRequestLogPersistsRow(t *testing.T) {
	db := setupLogTestDB(t)
	cfg := config.RequestLogConfig{Enabled: true, LogRequestBody: true, LogResponseBody: true, MaxBodySize: 10240}
	r := newLoggedRouter(db, cfg, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry models.APIRequestLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected one log row: %v", err)
	}
	if entry.Method != http.MethodPost || entry.Endpoint != "/api/v1/echo" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", entry.StatusCode)
	}
	if entry.RequestBody != `{"a":1}` {
		t.Errorf("unexpected request body %q", entry.RequestBody)
	}
	if !strings.Contains(entry.ResponseBody, "echo") {
		t.Errorf("unexpected response body %q", entry.ResponseBody)
	}
	if entry.UserAgent != "test-agent" {
		t.Errorf("unexpected user agent %q", entry.UserAgent)
	}
}

func TestRequestLogTruncatesBodies(t *testing.T) {
	db := setupLogTestDB(t)
	cfg := config.RequestLogConfig{Enabled: true, LogRequestBody: true, MaxBodySize: 4}
	var seen int
	r := newLoggedRouter(db, cfg, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader("0123456789"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry models.APIRequestLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected one log row: %v", err)
	}
	if entry.RequestBody != "0123" {
		t.Errorf("expected truncated body, got %q", entry.RequestBody)
	}
	if seen != 10 {
		t.Errorf("handler must still read the full body, saw %d bytes", seen)
	}
}

func TestRequestLogSkipsMultipartBody(t *testing.T) {
	db := setupLogTestDB(t)
	cfg := config.RequestLogConfig{Enabled: true, LogRequestBody: true, MaxBodySize: 10240}
	var seen int
	r := newLoggedRouter(db, cfg, &seen)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.jpg")
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	payload := bytes.Repeat([]byte{0xff}, 64*1024)
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	total := buf.Len()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/echo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var entry models.APIRequestLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("expected one log row: %v", err)
	}
	if entry.RequestBody != "" {
		t.Errorf("multipart bodies must not be captured, got %d bytes", len(entry.RequestBody))
	}
	if seen != total {
		t.Errorf("handler must receive the untouched stream, saw %d of %d bytes", seen, total)
	}
}

func TestRequestLogSkipsPublicPaths(t *testing.T) {
	db := setupLogTestDB(t)
	cfg := config.RequestLogConfig{Enabled: true}
	r := newLoggedRouter(db, cfg, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/up", nil))

	var count int64
	db.Model(&models.APIRequestLog{}).Count(&count)
	if count != 0 {
		t.Errorf("public paths must not be logged, got %d rows", count)
	}
}

func TestRequestLogDisabled(t *testing.T) {
	db := setupLogTestDB(t)
	cfg := config.RequestLogConfig{Enabled: false}
	r := newLoggedRouter(db, cfg, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/echo", nil))

	var count int64
	db.Model(&models.APIRequestLog{}).Count(&count)
	if count != 0 {
		t.Errorf("disabled logging must not persist rows, got %d", count)
	}
}
