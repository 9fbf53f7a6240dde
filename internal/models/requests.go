package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CreateCargoRequest представляет запрос на создание записи.
// Pieces - указатель, чтобы отличить отсутствующее поле от нуля.
type CreateCargoRequest struct {
	AWBNumber       string     `json:"awbNumber"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	Weight          string     `json:"weight"`
	Pieces          *int       `json:"pieces"`
	Shipper         string     `json:"shipper"`
	Consignee       string     `json:"consignee"`
	SpecialHandling []string   `json:"specialHandling"`
	Status          string     `json:"status"`
	Description     string     `json:"description"`
	Deadline        *time.Time `json:"deadline"`
	Timestamp       *time.Time `json:"timestamp"`
}

// ToCargo проверяет запрос и собирает из него запись.
// Порядок проверок: обязательные поля, формат AWB, коды аэропортов,
// количество мест, статус, коды особого обращения.
func (r *CreateCargoRequest) ToCargo() (*Cargo, *ValidationError) {
	if missing := missingFields(r.AWBNumber, r.Origin, r.Destination, r.Pieces != nil); len(missing) > 0 {
		return nil, newMissingFieldsError(missing)
	}

	awbNumber := strings.TrimSpace(r.AWBNumber)
	if verr := validateAWB(awbNumber); verr != nil {
		return nil, verr
	}

	origin := normalizeCode(r.Origin)
	destination := normalizeCode(r.Destination)
	if verr := validateAirportCode("origin", origin); verr != nil {
		return nil, verr
	}
	if verr := validateAirportCode("destination", destination); verr != nil {
		return nil, verr
	}

	if verr := validatePieces(*r.Pieces); verr != nil {
		return nil, verr
	}

	status := StatusAwaiting
	if r.Status != "" {
		parsed, ok := ParseStatus(r.Status)
		if !ok {
			return nil, invalidStatusError(r.Status)
		}
		status = parsed
	}

	codes, verr := normalizeHandlingCodes(r.SpecialHandling)
	if verr != nil {
		return nil, verr
	}

	cargo := &Cargo{
		AWBNumber:       awbNumber,
		Origin:          origin,
		Destination:     destination,
		Weight:          r.Weight,
		Pieces:          *r.Pieces,
		Shipper:         r.Shipper,
		Consignee:       r.Consignee,
		SpecialHandling: codes,
		Status:          status,
		Description:     r.Description,
		Deadline:        r.Deadline,
	}
	if r.Timestamp != nil {
		cargo.Timestamp = *r.Timestamp
	}

	return cargo, nil
}

// UpdateCargoRequest представляет частичное обновление записи.
// Отсутствующие в JSON поля остаются nil и не изменяются.
type UpdateCargoRequest struct {
	AWBNumber       *string      `json:"awbNumber"`
	Origin          *string      `json:"origin"`
	Destination     *string      `json:"destination"`
	Weight          *string      `json:"weight"`
	Pieces          *int         `json:"pieces"`
	Shipper         *string      `json:"shipper"`
	Consignee       *string      `json:"consignee"`
	SpecialHandling []string     `json:"specialHandling"`
	Status          *string      `json:"status"`
	Description     *string      `json:"description"`
	Deadline        OptionalTime `json:"deadline"`
}

// OptionalTime отличает отсутствующее поле от явного null.
// null означает сброс значения.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value time.Time
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// CargoUpdate - проверенный набор изменяемых полей
type CargoUpdate struct {
	Origin          *string
	Destination     *string
	Weight          *string
	Pieces          *int
	Shipper         *string
	Consignee       *string
	SpecialHandling []string
	Status          *CargoStatus
	Description     *string
	Deadline        *time.Time
	ClearDeadline   bool
}

// ToUpdate проверяет только переданные поля. Номер AWB неизменяем:
// допускается лишь повтор того же значения, что и в пути запроса.
func (r *UpdateCargoRequest) ToUpdate(awbNumber string) (*CargoUpdate, *ValidationError) {
	if r.AWBNumber != nil && !sameAWB(*r.AWBNumber, awbNumber) {
		return nil, &ValidationError{
			Kind:    KindImmutableField,
			Field:   "awbNumber",
			Message: "AWB number cannot be changed",
		}
	}

	update := &CargoUpdate{
		Weight:      r.Weight,
		Pieces:      r.Pieces,
		Shipper:     r.Shipper,
		Consignee:   r.Consignee,
		Description: r.Description,
	}

	if r.Deadline.Set {
		update.Deadline = r.Deadline.Value
		update.ClearDeadline = r.Deadline.Value == nil
	}

	if r.Origin != nil {
		origin := normalizeCode(*r.Origin)
		if verr := validateAirportCode("origin", origin); verr != nil {
			return nil, verr
		}
		update.Origin = &origin
	}

	if r.Destination != nil {
		destination := normalizeCode(*r.Destination)
		if verr := validateAirportCode("destination", destination); verr != nil {
			return nil, verr
		}
		update.Destination = &destination
	}

	if r.Pieces != nil {
		if verr := validatePieces(*r.Pieces); verr != nil {
			return nil, verr
		}
	}

	if r.Status != nil {
		status, ok := ParseStatus(*r.Status)
		if !ok {
			return nil, invalidStatusError(*r.Status)
		}
		update.Status = &status
	}

	if r.SpecialHandling != nil {
		codes, verr := normalizeHandlingCodes(r.SpecialHandling)
		if verr != nil {
			return nil, verr
		}
		update.SpecialHandling = codes
	}

	return update, nil
}

// sameAWB сравнивает номер из тела запроса с ключом пути в нормализованном виде
func sameAWB(body, awbNumber string) bool {
	key, _ := NormalizeAWB(body)
	return key == awbNumber
}

// IsEmpty сообщает, что обновление не затрагивает ни одного поля
func (u *CargoUpdate) IsEmpty() bool {
	return u.Origin == nil && u.Destination == nil && u.Weight == nil &&
		u.Pieces == nil && u.Shipper == nil && u.Consignee == nil &&
		u.SpecialHandling == nil && u.Status == nil && u.Description == nil &&
		u.Deadline == nil && !u.ClearDeadline
}

// Validate проверяет переданные поля по тем же правилам, что и при создании
func (u *CargoUpdate) Validate() *ValidationError {
	if u.Origin != nil {
		if verr := validateAirportCode("origin", *u.Origin); verr != nil {
			return verr
		}
	}
	if u.Destination != nil {
		if verr := validateAirportCode("destination", *u.Destination); verr != nil {
			return verr
		}
	}
	if u.Pieces != nil {
		if verr := validatePieces(*u.Pieces); verr != nil {
			return verr
		}
	}
	if u.Status != nil && !u.Status.Valid() {
		return invalidStatusError(string(*u.Status))
	}
	if u.SpecialHandling != nil {
		if _, verr := normalizeHandlingCodes(u.SpecialHandling); verr != nil {
			return verr
		}
	}
	return nil
}

// BulkFailure описывает элемент пакетной вставки, который не удалось сохранить
type BulkFailure struct {
	Index     int    `json:"index"`
	AWBNumber string `json:"awbNumber"`
	Message   string `json:"message"`
}

// BulkInsertResponse представляет результат пакетной вставки
type BulkInsertResponse struct {
	InsertedCount int           `json:"insertedCount"`
	FailedCount   int           `json:"failedCount"`
	Inserted      []Cargo       `json:"inserted"`
	Failed        []BulkFailure `json:"failed"`
}
