package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-service/internal/utils"
)

// Структуры для запросов и ответов
type CreateCargoRequest struct {
	AWBNumber       string   `json:"awbNumber"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	Pieces          int      `json:"pieces"`
	SpecialHandling []string `json:"specialHandling"`
	Status          string   `json:"status"`
}

type CargoResponse struct {
	ID          string    `json:"id"`
	AWBNumber   string    `json:"awbNumber"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Pieces      int       `json:"pieces"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func baseURL() string {
	if url := os.Getenv("CARGO_API_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

var client = &http.Client{Timeout: 5 * time.Second}

func doJSON(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "Ошибка при маршалинге запроса")
	}

	req, err := http.NewRequest(method, baseURL()+path, &buf)
	require.NoError(t, err, "Ошибка при создании запроса")
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err, "Ошибка при выполнении запроса %s %s", method, path)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Ошибка при чтении ответа")

	if out != nil && len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, out), "Ошибка при анмаршалинге ответа: %s", string(data))
	}

	return resp.StatusCode
}

func containsAWB(list []CargoResponse, awbNumber string) bool {
	for _, c := range list {
		if c.AWBNumber == awbNumber {
			return true
		}
	}
	return false
}

// Интеграционный тест: жизненный цикл отправки на запущенном сервере
func TestCargoWorkflow(t *testing.T) {
	// Проверяем доступность сервера
	resp, err := client.Get(baseURL() + "/health")
	if err != nil {
		t.Skipf("Сервер недоступен (%v). Запустите сервер или задайте CARGO_API_URL", err)
	}
	resp.Body.Close()

	awbNumber := utils.RandomAWB()

	// Шаг 1: Создаем отправку
	t.Logf("1. Создание отправки %s...", awbNumber)
	var created CargoResponse
	status := doJSON(t, http.MethodPost, "/api/cargo", CreateCargoRequest{
		AWBNumber:       awbNumber,
		Origin:          "HKG",
		Destination:     "LAX",
		Pieces:          3,
		SpecialHandling: []string{"PER"},
		Status:          "Awaiting",
	}, &created)
	require.Equal(t, http.StatusCreated, status, "Неверный статус-код при создании отправки")
	assert.NotEmpty(t, created.ID)

	// Шаг 2: Повторное создание отклоняется
	t.Log("2. Проверка уникальности номера AWB...")
	var duplicate ErrorResponse
	status = doJSON(t, http.MethodPost, "/api/cargo", CreateCargoRequest{
		AWBNumber:   awbNumber,
		Origin:      utils.RandomAirportCode(),
		Destination: utils.RandomAirportCode(),
		Pieces:      1,
	}, &duplicate)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cargo with this AWB number already exists", duplicate.Message)

	// Шаг 3: Отправка видна среди ожидающих
	t.Log("3. Проверка списка ожидающих...")
	var awaiting []CargoResponse
	status = doJSON(t, http.MethodGet, "/api/cargo/awaiting", nil, &awaiting)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, containsAWB(awaiting, awbNumber), "Отправка должна быть в списке ожидающих")

	// Шаг 4: Завершаем отправку
	t.Log("4. Перевод отправки в Done...")
	var updated CargoResponse
	status = doJSON(t, http.MethodPut, "/api/cargo/"+awbNumber, map[string]string{"status": "Done"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Done", updated.Status)
	assert.Equal(t, created.Pieces, updated.Pieces)
	assert.Equal(t, created.Origin, updated.Origin)

	// Шаг 5: Отправка переехала в историю
	t.Log("5. Проверка истории...")
	var history []CargoResponse
	status = doJSON(t, http.MethodGet, "/api/cargo/history", nil, &history)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, containsAWB(history, awbNumber), "Отправка должна быть в истории")

	awaiting = nil
	status = doJSON(t, http.MethodGet, "/api/cargo/awaiting", nil, &awaiting)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, containsAWB(awaiting, awbNumber), "Отправки не должно быть среди ожидающих")

	// Шаг 6: Несуществующая отправка
	t.Log("6. Обновление несуществующей отправки...")
	status = doJSON(t, http.MethodPut, "/api/cargo/000-00000000", map[string]string{"status": "Done"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	t.Log("✅ Интеграционный тест успешно завершен!")
}
