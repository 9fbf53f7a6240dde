package handlers

import (
	"errors"
	"net/http"

	"cargo-service/internal/api/middleware"
	"cargo-service/internal/db/queries"
	"cargo-service/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Сообщения об ошибках, которые видит клиент
const (
	msgCargoNotFound  = "Cargo not found"
	msgDuplicateAWB   = "Cargo with this AWB number already exists"
	msgInvalidRequest = "Invalid request body: "
)

// classifyError переводит ошибку хранилища в HTTP-статус и сообщение для клиента.
// Текст непредвиденных ошибок скрывается в production.
func classifyError(err error, production bool) (int, string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, queries.ErrCargoNotFound):
		return http.StatusNotFound, msgCargoNotFound
	case errors.Is(err, queries.ErrDuplicateAWB):
		return http.StatusBadRequest, msgDuplicateAWB
	case production:
		return http.StatusInternalServerError, middleware.InternalErrorMessage
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// respondError отвечает клиенту по классификации ошибки и логирует непредвиденные
func (h *CargoHandler) respondError(c *gin.Context, err error, fields ...zap.Field) {
	status, message := classifyError(err, h.production)
	if status == http.StatusInternalServerError {
		h.logger.Error("cargo store failure", append(fields, zap.Error(err))...)
		_ = c.Error(err)
	}

	c.JSON(status, models.ErrorResponse{
		Message: message,
	})
}
