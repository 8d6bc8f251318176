// Package team manages the public executive board roster.
package team

import (
	"time"

	"github.com/css-society/portal/internal/rbac"
)

// CapabilityName is the gate capability protecting roster writes.
const CapabilityName = rbac.CapTeams

// DefaultBio is used when a board member is added without a blurb.
const DefaultBio = "Core member of the Computer Science Society Executive Board."

// BoardMember is one roster entry. Rank orders the public listing, president
// first.
type BoardMember struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Image     string    `json:"image"`
	Bio       string    `json:"description"`
	Instagram string    `json:"instagram,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Rank      int       `json:"hierarchy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the create payload.
type Input struct {
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Image     string `json:"image"`
	Bio       string `json:"description"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Rank      int    `json:"hierarchy"`
}
