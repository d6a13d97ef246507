package models

import "time"

// RiskProfile drives the investment advice text in recommendations.
type RiskProfile string

const (
	RiskConservative RiskProfile = "CONSERVATIVE"
	RiskModerate     RiskProfile = "MODERATE"
	RiskAggressive   RiskProfile = "AGGRESSIVE"
)

// User represents application user.
type User struct {
	ID           uint        `gorm:"primaryKey"`
	Username     string      `gorm:"size:64;uniqueIndex;not null"`
	Email        string      `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string      `gorm:"size:255;not null"`
	DisplayName  string      `gorm:"size:64"`
	RiskProfile  RiskProfile `gorm:"size:16"` // empty = not set yet
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:64"`
}
