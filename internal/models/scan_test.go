package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAWB(t *testing.T) {
	testCases := []struct {
		scanned  string
		expected string
		ok       bool
	}{
		{"160-12345678", "160-12345678", true},
		{"16012345678", "160-12345678", true},
		{" AWB 160-12345678 ", "160-12345678", true},
		{"awb:16012345678", "160-12345678", true},
		{"160 1234 5678", "160-12345678", true},
		{"160-1234567", "160-1234567", false},
		{"160-123456789", "160-123456789", false},
		{"ABC-12345678", "ABC-12345678", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.scanned, func(t *testing.T) {
			key, ok := NormalizeAWB(tc.scanned)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, key)
		})
	}
}
