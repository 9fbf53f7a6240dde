package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomInt генерирует случайное число в заданном диапазоне
func RandomInt(min, max int64) int64 {
	return min + rand.Int63n(max-min+1)
}

// RandomString генерирует случайную строку из заглавных латинских букв
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[rand.Intn(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// RandomAWB генерирует номер авианакладной в формате XXX-XXXXXXXX
func RandomAWB() string {
	return fmt.Sprintf("%03d-%08d", RandomInt(0, 999), RandomInt(0, 99999999))
}

// RandomAirportCode генерирует трехбуквенный код аэропорта
func RandomAirportCode() string {
	return RandomString(3)
}
