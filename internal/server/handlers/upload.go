package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iudanet/shopkeeper/internal/server/media"
	"github.com/iudanet/shopkeeper/pkg/api"
)

// maxUploadSize ограничивает размер multipart тела (32 MB)
const maxUploadSize = 32 << 20

// UploadHandler принимает multipart файл и грузит его в media storage
type UploadHandler struct {
	logger    *slog.Logger
	uploader  media.Uploader
	uploadDir string // пустое значение = системный temp
}

// NewUploadHandler создает новый handler для загрузки файлов
func NewUploadHandler(logger *slog.Logger, uploader media.Uploader, uploadDir string) *UploadHandler {
	return &UploadHandler{
		logger:    logger,
		uploader:  uploader,
		uploadDir: uploadDir,
	}
}

// Upload обрабатывает POST /upload
// Файл сохраняется во временный файл, который uploader удаляет
// ровно один раз после попытки загрузки
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(h.logger, w, "No Image File Uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmpPath, err := h.saveTemp(file, header.Filename)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save temp file", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	url, err := h.uploader.Upload(ctx, tmpPath)
	if err != nil {
		// Причина различима по типу ошибки, клиенту уходит generic ответ
		switch {
		case errors.Is(err, media.ErrLocalFileMissing):
			h.logger.ErrorContext(ctx, "temp file disappeared before upload", slog.Any("error", err))
		case errors.Is(err, media.ErrUploadRejected):
			h.logger.WarnContext(ctx, "upload rejected by media service", slog.Any("error", err))
		default:
			h.logger.ErrorContext(ctx, "media upload failed", slog.Any("error", err))
		}
		sendError(h.logger, w, "failed to upload image", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "image uploaded", slog.String("url", url))

	resp := api.UploadResponse{
		Message: "Image Uploaded Successfully",
		URL:     url,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// saveTemp сохраняет multipart файл во временный файл,
// сохраняя расширение для content-type
func (h *UploadHandler) saveTemp(file io.Reader, filename string) (string, error) {
	ext := filepath.Ext(filename)

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
