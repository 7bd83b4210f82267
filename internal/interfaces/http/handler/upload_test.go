package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/application/social"
	"github.com/legallink/backend/internal/interfaces/http/dto"
)

// fakeObjectStorage records uploads in memory
type fakeObjectStorage struct {
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	f.objects[storageKey] = data
	return nil
}

func (f *fakeObjectStorage) Delete(_ context.Context, storageKey string) error {
	delete(f.objects, storageKey)
	return nil
}

func multipartUpload(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="attachment"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func newUploadRouter(storage *fakeObjectStorage, maxSize int64) *gin.Engine {
	svc := social.NewUploadService(storage, "https://cdn.legallink.example", maxSize, zap.NewNop())
	h := NewUploadHandler(svc)
	router := gin.New()
	router.POST("/uploads", h.Upload)
	return router
}

func TestUploadHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores a PNG and returns its URL", func(t *testing.T) {
		storage := newFakeObjectStorage()
		router := newUploadRouter(storage, 1<<20)

		body, contentType := multipartUpload(t, "image/png", []byte("png-bytes"))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/uploads", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Contains(t, data["url"], "https://cdn.legallink.example/")
		assert.Len(t, storage.objects, 1)
	})

	t.Run("rejects an unsupported content type", func(t *testing.T) {
		router := newUploadRouter(newFakeObjectStorage(), 1<<20)

		body, contentType := multipartUpload(t, "application/zip", []byte("zip-bytes"))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/uploads", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeUnsupportedMedia, resp.Error.Code)
	})

	t.Run("rejects an oversized upload", func(t *testing.T) {
		router := newUploadRouter(newFakeObjectStorage(), 8)

		body, contentType := multipartUpload(t, "image/png", bytes.Repeat([]byte("a"), 64))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/uploads", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("requires the file field", func(t *testing.T) {
		router := newUploadRouter(newFakeObjectStorage(), 1<<20)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/uploads", bytes.NewReader(nil))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
