// Package announcements manages the society news feed.
package announcements

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// Kind classifies a feed entry. The values match the options the admin panel
// offers.
type Kind string

const (
	KindUpdate      Kind = "Update"
	KindNotice      Kind = "Notice"
	KindOpportunity Kind = "Opportunity"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindUpdate, KindNotice, KindOpportunity:
		return true
	}
	return false
}

// CapabilityName is the gate capability protecting announcement writes.
const CapabilityName = rbac.CapAnnouncements

// Announcement is one feed entry.
type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"description"`
	PublishedAt time.Time `json:"date"`
	Kind        Kind      `json:"type"`
	Archived    bool      `json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the create payload.
type Input struct {
	Title       string    `json:"title" validate:"required"`
	Body        string    `json:"description" validate:"required"`
	PublishedAt time.Time `json:"date"`
	Kind        Kind      `json:"type"`
}
