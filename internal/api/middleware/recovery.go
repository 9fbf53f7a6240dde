package middleware

import (
	"fmt"
	"net/http"

	"cargo-service/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InternalErrorMessage отдается клиенту вместо текста ошибки в production
const InternalErrorMessage = "Internal server error"

// Recovery перехватывает панику в обработчиках и отвечает 500.
// Вне production в ответ попадает исходное сообщение.
func Recovery(logger *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		message := InternalErrorMessage
		if !production {
			message = fmt.Sprint(recovered)
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: message,
		})
	})
}

// NotFound отвечает на запросы к несуществующим маршрутам
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Message: "Route not found",
	})
}
