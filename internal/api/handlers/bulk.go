package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cargo-service/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BulkCreateCargo вставляет массив отправок по одной.
// Ошибка в одном элементе, включая неверный тип поля,
// не останавливает вставку остальных.
func (h *CargoHandler) BulkCreateCargo(c *gin.Context) {
	var reqs []json.RawMessage

	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: msgInvalidRequest + err.Error(),
		})
		return
	}

	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "No cargo records supplied",
		})
		return
	}

	response := models.BulkInsertResponse{
		Inserted: make([]models.Cargo, 0, len(reqs)),
		Failed:   []models.BulkFailure{},
	}

	for i, raw := range reqs {
		var req models.CreateCargoRequest

		// Декодер продолжает разбор после ошибки типа, поэтому номер AWB обычно известен
		if err := json.Unmarshal(raw, &req); err != nil {
			response.Failed = append(response.Failed, models.BulkFailure{
				Index:     i,
				AWBNumber: strings.TrimSpace(req.AWBNumber),
				Message:   msgInvalidRequest + err.Error(),
			})
			continue
		}

		cargo, verr := req.ToCargo()
		if verr != nil {
			response.Failed = append(response.Failed, models.BulkFailure{
				Index:     i,
				AWBNumber: strings.TrimSpace(req.AWBNumber),
				Message:   verr.Message,
			})
			continue
		}

		created, err := h.cargoQueries.CreateCargo(c.Request.Context(), cargo)
		if err != nil {
			status, message := classifyError(err, h.production)
			if status == http.StatusInternalServerError {
				h.logger.Error("bulk insert element failed",
					zap.Int("index", i),
					zap.String("awb_number", cargo.AWBNumber),
					zap.Error(err),
				)
			}
			response.Failed = append(response.Failed, models.BulkFailure{
				Index:     i,
				AWBNumber: cargo.AWBNumber,
				Message:   message,
			})
			continue
		}

		response.Inserted = append(response.Inserted, *created)
	}

	response.InsertedCount = len(response.Inserted)
	response.FailedCount = len(response.Failed)
	cargoCreatedTotal.Add(float64(response.InsertedCount))

	h.logger.Info("bulk insert finished",
		zap.Int("inserted", response.InsertedCount),
		zap.Int("failed", response.FailedCount),
	)

	status := http.StatusCreated
	switch {
	case response.InsertedCount == 0:
		status = http.StatusBadRequest
	case response.FailedCount > 0:
		status = http.StatusMultiStatus
	}

	c.JSON(status, response)
}
