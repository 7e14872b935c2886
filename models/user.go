// File: /models/user.go
package models

import (
	"time"
)

// User is the profile kept for each external identity. The ID is the
// identity provider's stable subject, not a locally generated value.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	DisplayName string    `json:"display_name" gorm:"not null;size:255"`
	PhotoURL    *string   `json:"photo_url" gorm:"size:500"`
	Verified    bool      `json:"verified" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
