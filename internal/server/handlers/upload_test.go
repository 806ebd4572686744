package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shopkeeper/internal/server/media"
	"github.com/iudanet/shopkeeper/pkg/api"
)

// mockUploader is a mock implementation of media.Uploader
type mockUploader struct {
	url string
	err error

	uploadedPath    string
	contentAtUpload []byte
}

func (m *mockUploader) Upload(_ context.Context, localPath string) (string, error) {
	m.uploadedPath = localPath
	// Читаем файл в момент вызова: боевой uploader удаляет его после себя
	m.contentAtUpload, _ = os.ReadFile(localPath)
	os.Remove(localPath)
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

// multipartBody собирает multipart тело с одним файлом в поле field
func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Success(t *testing.T) {
	uploader := &mockUploader{url: "http://127.0.0.1:9000/media/uploads/2026/08/30/abc.jpg"}
	h := NewUploadHandler(setupTestLogger(), uploader, t.TempDir())

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.UploadResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Image Uploaded Successfully", resp.Message)
	assert.Equal(t, uploader.url, resp.URL)

	// Временный файл сохраняет расширение и содержимое оригинала
	assert.Equal(t, ".jpg", filepath.Ext(uploader.uploadedPath))
	assert.Equal(t, []byte("jpeg-bytes"), uploader.contentAtUpload)
}

func TestUploadHandler_NoFile(t *testing.T) {
	uploader := &mockUploader{url: "http://example.com/x.jpg"}
	h := NewUploadHandler(setupTestLogger(), uploader, t.TempDir())

	// Multipart тело без поля file
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("name", "photo"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "No Image File Uploaded", resp.Message)

	assert.Empty(t, uploader.uploadedPath)
}

func TestUploadHandler_NotMultipart(t *testing.T) {
	h := NewUploadHandler(setupTestLogger(), &mockUploader{}, t.TempDir())

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("plain body"))
	w := httptest.NewRecorder()

	h.Upload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandler_UploaderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rejected by service", media.ErrUploadRejected},
		{"local file missing", media.ErrLocalFileMissing},
		{"transport failure", assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{err: tt.err}
			h := NewUploadHandler(setupTestLogger(), uploader, t.TempDir())

			body, contentType := multipartBody(t, "file", "photo.png", []byte("png-bytes"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			h.Upload(w, req)

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "failed to upload image", resp.Message)
		})
	}
}
