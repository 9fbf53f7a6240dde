package handlers

import (
	"net/http"
	"time"

	"cargo-service/internal/models"

	"github.com/gin-gonic/gin"
)

// HealthHandler отвечает на проверку живости
type HealthHandler struct {
	environment string
	now         func() time.Time
}

// NewHealthHandler создает новый экземпляр HealthHandler
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		now:         time.Now,
	}
}

// Health сообщает, что процесс жив. База данных не опрашивается.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:      "OK",
		Timestamp:   h.now().UTC().Truncate(time.Millisecond),
		Environment: h.environment,
	})
}
