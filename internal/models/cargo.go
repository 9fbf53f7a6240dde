package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// CargoStatus - этап жизненного цикла отправки
type CargoStatus string

// Допустимые статусы отправки
const (
	StatusAwaiting   CargoStatus = "Awaiting"
	StatusInProgress CargoStatus = "In Progress"
	StatusDone       CargoStatus = "Done"
	StatusCancelled  CargoStatus = "Cancelled"
)

// Statuses перечисляет все допустимые статусы в порядке жизненного цикла
var Statuses = []CargoStatus{StatusAwaiting, StatusInProgress, StatusDone, StatusCancelled}

// Valid сообщает, является ли статус одним из допустимых значений
func (s CargoStatus) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseStatus приводит строку к статусу без учета регистра.
// "in_progress" и "in-progress" тоже означают In Progress.
func ParseStatus(raw string) (CargoStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)

	for _, status := range Statuses {
		if strings.ToLower(string(status)) == normalized {
			return status, true
		}
	}
	return "", false
}

// Cargo представляет одну отправку (запись AWB)
type Cargo struct {
	ID              string         `json:"id" db:"id"`
	AWBNumber       string         `json:"awbNumber" db:"awb_number"`
	Origin          string         `json:"origin" db:"origin"`
	Destination     string         `json:"destination" db:"destination"`
	Weight          string         `json:"weight" db:"weight"`
	Pieces          int            `json:"pieces" db:"pieces"`
	Shipper         string         `json:"shipper" db:"shipper"`
	Consignee       string         `json:"consignee" db:"consignee"`
	SpecialHandling pq.StringArray `json:"specialHandling" db:"special_handling"`
	Status          CargoStatus    `json:"status" db:"status"`
	Description     string         `json:"description" db:"description"`
	Deadline        *time.Time     `json:"deadline,omitempty" db:"deadline"`
	Timestamp       time.Time      `json:"timestamp" db:"created_at"`
}

// Validate проверяет инварианты записи перед сохранением
func (c *Cargo) Validate() *ValidationError {
	if missing := missingFields(c.AWBNumber, c.Origin, c.Destination, true); len(missing) > 0 {
		return newMissingFieldsError(missing)
	}
	if verr := validateAWB(c.AWBNumber); verr != nil {
		return verr
	}
	if verr := validateAirportCode("origin", c.Origin); verr != nil {
		return verr
	}
	if verr := validateAirportCode("destination", c.Destination); verr != nil {
		return verr
	}
	if verr := validatePieces(c.Pieces); verr != nil {
		return verr
	}
	if !c.Status.Valid() {
		return invalidStatusError(string(c.Status))
	}
	if _, verr := normalizeHandlingCodes(c.SpecialHandling); verr != nil {
		return verr
	}
	return nil
}

// CargoFilter - конъюнктивный фильтр выборки; пустые поля не участвуют
type CargoFilter struct {
	Status          CargoStatus
	Origin          string
	Destination     string
	SpecialHandling string
}

// IsEmpty сообщает, что фильтр выбирает всю коллекцию
func (f CargoFilter) IsEmpty() bool {
	return f == CargoFilter{}
}

// CargoSearchQuery представляет параметры запроса /api/cargo/search
type CargoSearchQuery struct {
	Origin          string `form:"origin"`
	Destination     string `form:"destination"`
	Status          string `form:"status"`
	SpecialHandling string `form:"specialHandling"`
}

// ToFilter проверяет параметры поиска и переводит их в фильтр хранилища
func (q CargoSearchQuery) ToFilter() (CargoFilter, *ValidationError) {
	var filter CargoFilter

	if q.Status != "" {
		status, ok := ParseStatus(q.Status)
		if !ok {
			return CargoFilter{}, invalidStatusError(q.Status)
		}
		filter.Status = status
	}

	if q.Origin != "" {
		filter.Origin = normalizeCode(q.Origin)
		if verr := validateAirportCode("origin", filter.Origin); verr != nil {
			return CargoFilter{}, verr
		}
	}

	if q.Destination != "" {
		filter.Destination = normalizeCode(q.Destination)
		if verr := validateAirportCode("destination", filter.Destination); verr != nil {
			return CargoFilter{}, verr
		}
	}

	filter.SpecialHandling = normalizeCode(q.SpecialHandling)

	return filter, nil
}
