package registrations

import (
	"context"
	"strings"
)

// Service wraps ledger business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register records a public event sign-up. Roll numbers are standardized
// upper-case and emails lower-case before the duplicate check applies.
func (s *Service) Register(ctx context.Context, input Input) (*Registration, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.RollNo = strings.ToUpper(strings.TrimSpace(input.RollNo))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.EventTitle = strings.TrimSpace(input.EventTitle)
	if input.Phone == "" {
		input.Phone = "Not Provided"
	}
	return s.repo.Create(ctx, input)
}

// List returns the full ledger for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]Registration, error) {
	return s.repo.List(ctx)
}

// Delete purges a ledger entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
