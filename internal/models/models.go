package models

import "time"

// ErrorResponse представляет ошибку API
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse представляет ответ проверки живости сервиса
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}
