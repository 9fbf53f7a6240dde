package handlers

import (
	"net/http"

	"cargo-service/internal/db/queries"
	"cargo-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var cargoCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "cargo_records_created_total",
	Help: "Total number of cargo records created",
})

// CargoHandler содержит обработчики для работы с отправками
type CargoHandler struct {
	cargoQueries queries.CargoQueriesInterface
	logger       *zap.Logger
	production   bool
}

// NewCargoHandler создает новый экземпляр CargoHandler
func NewCargoHandler(cargoQueries queries.CargoQueriesInterface, logger *zap.Logger, production bool) *CargoHandler {
	return &CargoHandler{
		cargoQueries: cargoQueries,
		logger:       logger,
		production:   production,
	}
}

// GetAllCargo возвращает все отправки
func (h *CargoHandler) GetAllCargo(c *gin.Context) {
	h.listCargo(c, models.CargoFilter{})
}

// GetAwaitingCargo возвращает отправки, которые еще не отсканированы
func (h *CargoHandler) GetAwaitingCargo(c *gin.Context) {
	h.listCargo(c, models.CargoFilter{Status: models.StatusAwaiting})
}

// GetCargoHistory возвращает завершенные отправки
func (h *CargoHandler) GetCargoHistory(c *gin.Context) {
	h.listCargo(c, models.CargoFilter{Status: models.StatusDone})
}

// GetCargoByStatus возвращает отправки с указанным в пути статусом
func (h *CargoHandler) GetCargoByStatus(c *gin.Context) {
	filter, verr := models.CargoSearchQuery{Status: c.Param("status")}.ToFilter()
	if verr != nil {
		h.respondError(c, verr)
		return
	}

	h.listCargo(c, filter)
}

// SearchCargo возвращает отправки по любому сочетанию параметров
// origin, destination, status и specialHandling
func (h *CargoHandler) SearchCargo(c *gin.Context) {
	var query models.CargoSearchQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Invalid query parameters: " + err.Error(),
		})
		return
	}

	filter, verr := query.ToFilter()
	if verr != nil {
		h.respondError(c, verr)
		return
	}

	h.listCargo(c, filter)
}

func (h *CargoHandler) listCargo(c *gin.Context, filter models.CargoFilter) {
	cargoList, err := h.cargoQueries.GetCargoList(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, zap.Any("filter", filter))
		return
	}

	c.JSON(http.StatusOK, cargoList)
}

// GetCargoByAWB возвращает отправку по номеру AWB.
// Номер принимается в том виде, в каком его считал сканер.
func (h *CargoHandler) GetCargoByAWB(c *gin.Context) {
	awbNumber, ok := models.NormalizeAWB(c.Param("awbNumber"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: msgCargoNotFound,
		})
		return
	}

	cargo, err := h.cargoQueries.GetCargoByAWB(c.Request.Context(), awbNumber)
	if err != nil {
		h.respondError(c, err, zap.String("awb_number", awbNumber))
		return
	}

	c.JSON(http.StatusOK, cargo)
}

// CreateCargo обрабатывает запрос на создание отправки
func (h *CargoHandler) CreateCargo(c *gin.Context) {
	var req models.CreateCargoRequest

	// Проверяем запрос
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: msgInvalidRequest + err.Error(),
		})
		return
	}

	cargo, verr := req.ToCargo()
	if verr != nil {
		h.respondError(c, verr)
		return
	}

	created, err := h.cargoQueries.CreateCargo(c.Request.Context(), cargo)
	if err != nil {
		h.respondError(c, err, zap.String("awb_number", cargo.AWBNumber))
		return
	}

	cargoCreatedTotal.Inc()
	h.logger.Info("cargo created",
		zap.String("awb_number", created.AWBNumber),
		zap.String("status", string(created.Status)),
	)

	c.JSON(http.StatusCreated, created)
}

// UpdateCargo обрабатывает частичное обновление отправки
func (h *CargoHandler) UpdateCargo(c *gin.Context) {
	awbNumber, ok := models.NormalizeAWB(c.Param("awbNumber"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: msgCargoNotFound,
		})
		return
	}

	var req models.UpdateCargoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: msgInvalidRequest + err.Error(),
		})
		return
	}

	update, verr := req.ToUpdate(awbNumber)
	if verr != nil {
		h.respondError(c, verr)
		return
	}

	cargo, err := h.cargoQueries.UpdateCargo(c.Request.Context(), awbNumber, update)
	if err != nil {
		h.respondError(c, err, zap.String("awb_number", awbNumber))
		return
	}

	if update.Status != nil {
		h.logger.Info("cargo status changed",
			zap.String("awb_number", cargo.AWBNumber),
			zap.String("status", string(cargo.Status)),
		)
	}

	c.JSON(http.StatusOK, cargo)
}
