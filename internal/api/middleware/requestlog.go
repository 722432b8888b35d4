package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/config"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// bodyRecorder tees the response body so it can be persisted after the
// handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// RequestLog returns a middleware that persists one APIRequestLog row per
// handled request. Public paths are skipped and multipart bodies are never
// captured. Persistence failures are logged, never surfaced to the client.
func RequestLog(db *gorm.DB, cfg config.RequestLogConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || IsPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		// Multipart bodies (file uploads) are never captured, and the
		// capture reads at most MaxBodySize bytes; the handler keeps the
		// untouched remainder of the stream.
		var reqBody string
		if cfg.LogRequestBody && c.Request.Body != nil && !isMultipart(c) {
			reader := io.Reader(c.Request.Body)
			if cfg.MaxBodySize > 0 {
				reader = io.LimitReader(c.Request.Body, int64(cfg.MaxBodySize))
			}
			data, err := io.ReadAll(reader)
			if err == nil {
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), c.Request.Body))
				reqBody = string(data)
			}
		}

		var rec *bodyRecorder
		if cfg.LogResponseBody {
			rec = &bodyRecorder{ResponseWriter: c.Writer}
			c.Writer = rec
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start).Milliseconds()

		entry := models.APIRequestLog{
			Method:         c.Request.Method,
			Endpoint:       c.Request.URL.Path,
			StatusCode:     c.Writer.Status(),
			ResponseTimeMs: elapsed,
			IPAddress:      c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
			RequestBody:    reqBody,
			ErrorMessage:   strings.Join(c.Errors.Errors(), "; "),
		}
		if rec != nil {
			entry.ResponseBody = truncate(rec.buf.String(), cfg.MaxBodySize)
		}

		if err := db.Create(&entry).Error; err != nil {
			slog.Warn("Failed to persist API request log", "error", err)
		}
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
