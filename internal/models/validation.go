package models

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationKind определяет тип ошибки валидации
type ValidationKind string

const (
	KindMissingField        ValidationKind = "missing_field"
	KindInvalidAWB          ValidationKind = "invalid_awb"
	KindInvalidAirportCode  ValidationKind = "invalid_airport_code"
	KindInvalidPieces       ValidationKind = "invalid_pieces"
	KindInvalidStatus       ValidationKind = "invalid_status"
	KindInvalidHandlingCode ValidationKind = "invalid_handling_code"
	KindImmutableField      ValidationKind = "immutable_field"
)

// ValidationError - результат неуспешной проверки записи
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	awbPattern         = regexp.MustCompile(`^\d{3}-\d{8}$`)
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// missingFields возвращает имена отсутствующих обязательных полей в порядке объявления
func missingFields(awbNumber, origin, destination string, piecesPresent bool) []string {
	var missing []string
	if strings.TrimSpace(awbNumber) == "" {
		missing = append(missing, "awbNumber")
	}
	if strings.TrimSpace(origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(destination) == "" {
		missing = append(missing, "destination")
	}
	if !piecesPresent {
		missing = append(missing, "pieces")
	}
	return missing
}

func newMissingFieldsError(missing []string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Field:   missing[0],
		Message: "Missing required fields: " + strings.Join(missing, ", "),
	}
}

func validateAWB(awbNumber string) *ValidationError {
	if !awbPattern.MatchString(awbNumber) {
		return &ValidationError{
			Kind:    KindInvalidAWB,
			Field:   "awbNumber",
			Message: "Invalid AWB number format. Expected format: XXX-XXXXXXXX",
		}
	}
	return nil
}

func validateAirportCode(field, code string) *ValidationError {
	if !airportCodePattern.MatchString(code) {
		return &ValidationError{
			Kind:    KindInvalidAirportCode,
			Field:   field,
			Message: "Airport codes must be exactly 3 letters",
		}
	}
	return nil
}

func validatePieces(pieces int) *ValidationError {
	if pieces < 1 {
		return &ValidationError{
			Kind:    KindInvalidPieces,
			Field:   "pieces",
			Message: "Pieces must be at least 1",
		}
	}
	return nil
}

func invalidStatusError(raw string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidStatus,
		Field:   "status",
		Message: fmt.Sprintf("Invalid status %q. Allowed values: Awaiting, In Progress, Done, Cancelled", raw),
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// normalizeHandlingCodes приводит коды к верхнему регистру и убирает повторы.
// Порядок первого вхождения сохраняется.
func normalizeHandlingCodes(codes []string) ([]string, *ValidationError) {
	result := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))

	for _, raw := range codes {
		code := normalizeCode(raw)
		if code == "" {
			return nil, &ValidationError{
				Kind:    KindInvalidHandlingCode,
				Field:   "specialHandling",
				Message: "Special handling codes must not be empty",
			}
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}

	return result, nil
}
