// Package events manages the society event calendar.
package events

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// Status values an event can be in. Cancellation is a manual override and is
// never flipped by the clock.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CapabilityName is the gate capability protecting event writes.
const CapabilityName = rbac.CapEvents

// DefaultLocation is used when the organizer leaves the venue blank.
const DefaultLocation = "GCU Lahore"

// Event is a calendar entry.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"date"`
	Image       string    `json:"image"`
	Location    string    `json:"location"`
	Status      Status    `json:"status"`
	Archived    bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the create/update payload.
type Input struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	StartsAt    time.Time `json:"date" validate:"required"`
	Image       string    `json:"image"`
	Location    string    `json:"location"`
	Status      Status    `json:"status"`
	Archived    bool      `json:"isArchived"`
}

// DeriveStatus resolves the effective status for an event dated startsAt.
// A past date forces completed unless the event was cancelled; an empty
// status defaults to upcoming.
func DeriveStatus(current Status, startsAt, now time.Time) Status {
	if current == StatusCancelled {
		return current
	}
	if startsAt.Before(now) {
		return StatusCompleted
	}
	if current == "" {
		return StatusUpcoming
	}
	return current
}
