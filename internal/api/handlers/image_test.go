package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"github.com/monitool/backend/internal/storage"
	"gorm.io/gorm"
)

func newImageRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	r := newTestEngine()
	h := NewImageHandler(db, store, 10*1024*1024)
	r.POST("/images/upload", h.Upload)
	r.GET("/uploads/:subfolder/:filename", h.Serve)
	r.DELETE("/images", h.Delete)
	return r
}

// multipartUpload builds a multipart body with an explicit part content type
func multipartUpload(t *testing.T, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	r := newImageRouter(t, db)

	payload := []byte("png bytes here")
	body, contentType := multipartUpload(t, "image/png", payload, map[string]string{"subfolder": "toolboxes"})

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[UploadResponse](t, w)
	if resp.FileSize != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), resp.FileSize)
	}

	// Fetch the stored file back through the serve path
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.FilePath, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 serving %s, got %d", resp.FilePath, w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), payload) {
		t.Error("served bytes differ from uploaded bytes")
	}

	// Delete it and confirm it is gone
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/images?file_path="+url.QueryEscape(resp.FilePath), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.FilePath, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestUploadRejectsWrongContentType(t *testing.T) {
	db := setupTestDB(t)
	r := newImageRouter(t, db)

	body, contentType := multipartUpload(t, "application/pdf", []byte("%PDF"), nil)

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-image upload, got %d", w.Code)
	}
}

func TestUploadRecordsImageRow(t *testing.T) {
	db := setupTestDB(t)
	r := newImageRouter(t, db)

	box := models.Toolbox{Name: "TBX-1"}
	mustCreate(t, db, &box)

	body, contentType := multipartUpload(t, "image/jpeg", []byte("jpeg"), map[string]string{
		"toolbox_id": box.ID.String(),
		"image_type": models.ImageTypeReference,
	})

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var img models.Image
	if err := db.Where("toolbox_id = ?", box.ID).First(&img).Error; err != nil {
		t.Fatalf("expected an image row: %v", err)
	}
	if img.ImageType != models.ImageTypeReference {
		t.Errorf("expected image_type reference, got %q", img.ImageType)
	}
}

func TestUploadUnknownToolboxRejected(t *testing.T) {
	db := setupTestDB(t)
	r := newImageRouter(t, db)

	body, contentType := multipartUpload(t, "image/jpeg", []byte("jpeg"), map[string]string{
		"toolbox_id": "f2b3ad37-0000-0000-0000-000000000000",
	})

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown toolbox, got %d", w.Code)
	}
	var count int64
	db.Model(&models.Image{}).Count(&count)
	if count != 0 {
		t.Errorf("no image row expected, got %d", count)
	}
}

func TestDeleteUnknownImage(t *testing.T) {
	db := setupTestDB(t)
	r := newImageRouter(t, db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/images?file_path=/uploads/toolboxes/ghost.jpg", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
