// File: /services/errors.go
package services

import "errors"

// Not-found errors: the referenced record does not exist, nothing was written
var (
	ErrMotorNotFound = errors.New("motor not found")
	ErrCostNotFound  = errors.New("cost entry not found")
	ErrItemNotFound  = errors.New("inventory item not found")
)

// Validation errors: rejected at the boundary before any persistence
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidPaidBy     = errors.New("paid_by must be one of dh, ks, zc")
	ErrInvalidImageIndex = errors.New("primary image index out of range")
	ErrInvalidMediaKind  = errors.New("media kind must be image or video")
)

// IsNotFound reports whether err belongs to the not-found family
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMotorNotFound) ||
		errors.Is(err, ErrCostNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

// IsValidation reports whether err belongs to the validation family
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPaidBy) ||
		errors.Is(err, ErrInvalidImageIndex) ||
		errors.Is(err, ErrInvalidMediaKind)
}
