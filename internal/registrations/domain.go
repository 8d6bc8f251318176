// Package registrations keeps the event sign-up ledger.
package registrations

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// CapabilityName is the gate capability protecting ledger access.
const CapabilityName = rbac.CapRegistrations

// Registration is one ledger entry. A roll number may register once per
// event title; the pair is the uniqueness key.
type Registration struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RollNo     string    `json:"rollNo"`
	Email      string    `json:"email"`
	Phone      string    `json:"phoneNumber"`
	Department string    `json:"department"`
	Semester   string    `json:"semester"`
	EventTitle string    `json:"event"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Input is the public sign-up payload.
type Input struct {
	Name       string `json:"name" validate:"required"`
	RollNo     string `json:"rollNo" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phoneNumber"`
	Department string `json:"department" validate:"required"`
	Semester   string `json:"semester" validate:"required"`
	EventTitle string `json:"event" validate:"required"`
	Message    string `json:"message"`
}
