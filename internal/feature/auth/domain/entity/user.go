// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is an operator of the outreach backend (a club member who sends sponsorship emails).
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is used as the login name and must be unique.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
