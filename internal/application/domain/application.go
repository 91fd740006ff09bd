package domain

import "time"

// Status classifies where a job application stands
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusOffer    Status = "OFFER"
	StatusRejected Status = "REJECTED"
)

// ValidStatus reports whether s is one of the known status values
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Application is one tracked job application. Created either by the user or
// by the sync pipeline on first encountering a matching email.
type Application struct {
	ID              string        `json:"id" gorm:"primaryKey"`
	UserID          string        `json:"user_id" gorm:"index;not null"`
	Company         string        `json:"company" gorm:"not null"`
	Role            string        `json:"role" gorm:"not null"`
	Status          Status        `json:"status" gorm:"default:ACTIVE"`
	NextStep        string        `json:"next_step"`
	AppliedAt       *time.Time    `json:"applied_at"`
	LastContactedAt *time.Time    `json:"last_contacted_at"`
	Interactions    []Interaction `json:"interactions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Interaction is one logged email event against an Application. It is
// immutable after creation and removed only via cascade from its Application.
// Per user, the (subject, timestamp) pair is unique; the sync pipeline's
// duplicate filter upholds this before insertion.
type Interaction struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ApplicationID string    `json:"application_id" gorm:"index;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"index;not null"` // the email's send time
	Subject       string    `json:"subject" gorm:"not null"`
	Summary       string    `json:"summary"`
	Type          Status    `json:"type"` // status classification at extraction time
	CreatedAt     time.Time `json:"created_at"`
}
