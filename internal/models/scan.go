package models

import (
	"strings"
	"unicode"
)

// NormalizeAWB переводит отсканированную строку в ключ поиска XXX-XXXXXXXX.
// Принимаются формы "160-12345678", "16012345678" и "AWB 160-12345678".
// Если строку нельзя привести к номеру AWB, она возвращается без изменений
// (без пробелов по краям) и ok == false.
func NormalizeAWB(scanned string) (string, bool) {
	trimmed := strings.TrimSpace(scanned)

	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "AWB") {
		trimmed = strings.TrimLeft(trimmed[3:], " :-#")
	}

	digits := make([]rune, 0, 11)
	for _, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			digits = append(digits, r)
		case r == '-' || r == ' ':
		default:
			return strings.TrimSpace(scanned), false
		}
	}

	if len(digits) != 11 {
		return strings.TrimSpace(scanned), false
	}

	return string(digits[:3]) + "-" + string(digits[3:]), true
}
