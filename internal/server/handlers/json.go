package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/shopkeeper/internal/errs"
	"github.com/iudanet/shopkeeper/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendFlowError транслирует ошибку бизнес-потока в HTTP ответ.
// Внутренние ошибки логируются целиком, клиенту уходит только
// generic сообщение.
func sendFlowError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var flowErr *errs.Error
	if errors.As(err, &flowErr) {
		if flowErr.Kind == errs.KindInternal {
			logger.ErrorContext(r.Context(), "internal error", slog.Any("error", err))
		}
		sendError(logger, w, flowErr.Message, flowErr.Kind.HTTPStatus())
		return
	}

	logger.ErrorContext(r.Context(), "unexpected error", slog.Any("error", err))
	sendError(logger, w, "Internal server error", http.StatusInternalServerError)
}
