// File: /utils/validators.go
package utils

import (
	"strings"
	"time"
)

func IsValidYear(year int) bool {
	return year >= 1900 && year <= time.Now().Year()+1
}

// NormalizeCarPlate upper-cases the plate and strips surrounding/inner spaces
func NormalizeCarPlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

func IsValidQuantity(quantity int) bool {
	return quantity >= 0
}
