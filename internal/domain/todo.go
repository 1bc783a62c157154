package domain

import "time"

// Todo is owned by exactly one user. ID and UserID never change after creation.
type Todo struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description *string
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
