package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/jobs"
)

// Enqueuer submits notification tasks to the job queue.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

// Service wraps inbox business rules.
type Service struct {
	repo     Repository
	enqueuer Enqueuer
	notifyTo string
	logger   *slog.Logger
}

// NewService constructs a new Service. enqueuer and notifyTo may be empty,
// in which case no notification email is queued.
func NewService(repo Repository, enqueuer Enqueuer, notifyTo string, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, notifyTo: notifyTo, logger: logger}
}

// Submit stores a public contact-form message and queues a notification for
// the society inbox. A queue failure does not fail the submission.
func (s *Service) Submit(ctx context.Context, input Input) (*Contact, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Subject = strings.TrimSpace(input.Subject)
	if input.Priority == "" {
		input.Priority = PriorityNormal
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", httpx.ErrValidation, input.Priority)
	}
	msg, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if s.enqueuer != nil && s.notifyTo != "" {
		payload := jobs.SendEmailPayload{
			To:      s.notifyTo,
			Subject: "New contact message: " + msg.Subject,
			Body:    fmt.Sprintf("From %s <%s>:\n\n%s", msg.Name, msg.Email, msg.Body),
		}
		if _, err := s.enqueuer.EnqueueSendEmail(ctx, payload); err != nil {
			s.logger.Warn("enqueue contact notification", slog.Any("error", err))
		}
	}
	return msg, nil
}

// List returns the inbox for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]Contact, error) {
	return s.repo.List(ctx)
}

// SetRead flips the read marker on a message.
func (s *Service) SetRead(ctx context.Context, id int64, read bool) (*Contact, error) {
	return s.repo.SetRead(ctx, id, read)
}
