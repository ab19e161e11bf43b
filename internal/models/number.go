package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// generateNumber creates a unique human-readable document number,
// e.g. RCV20250831-3F7A
func generateNumber(prefix string) string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return prefix + time.Now().Format("20060102") + "-" + suffix
}
