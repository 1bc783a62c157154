package domain

import "time"

// User mirrors the identity provider's profile. ID is the provider's subject claim.
type User struct {
	ID              string `gorm:"primaryKey"`
	Email           *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}
