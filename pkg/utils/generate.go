package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ParseUUIDs parses every string or fails on the first malformed one.
func ParseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", v, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// ==================== PAYMENT ====================

// GenerateTransactionID builds a reference for simulated payments.
// Format: PAY-YYYYMMDD-HHMMSS-RANDOM
func GenerateTransactionID() string {
	now := time.Now()
	return fmt.Sprintf("PAY-%s-%s-%04d", now.Format("20060102"), now.Format("150405"), rand.Intn(10000))
}

// ==================== SEATS ====================

// RowLabel converts a 1-based row number into a spreadsheet-style label:
// 1 -> A, 26 -> Z, 27 -> AA, 28 -> AB, 702 -> ZZ, 703 -> AAA.
func RowLabel(row int) string {
	if row < 1 {
		return ""
	}

	var b []byte
	for row > 0 {
		row-- // shift to 0-based so 26 maps to Z instead of rolling over
		b = append(b, byte('A'+row%26))
		row /= 26
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// SeatLabel joins row label and column, e.g. (2, 3) -> "B3".
func SeatLabel(row, column int) string {
	return RowLabel(row) + strconv.Itoa(column)
}

// ==================== QUERY PARAMS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// NormalizeLang lowercases and trims a language code from a query string.
func NormalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
