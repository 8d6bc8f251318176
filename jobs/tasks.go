// Package jobs holds the background task definitions and the Asynq worker
// plumbing shared by the portal and worker binaries.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/hibiken/asynq"

	"github.com/css-society/portal/internal/events"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeEventSweep is the task type for the event status sweep.
	TaskTypeEventSweep = "events:sweep"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewEventSweepTask constructs the scheduled sweep task.
func NewEventSweepTask() *asynq.Task {
	return asynq.NewTask(TaskTypeEventSweep, nil)
}

// SMTPConfig carries outbound mail settings. An empty Host disables
// delivery; the payload is logged instead.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Mailer processes TaskTypeSendEmail tasks.
type Mailer struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewMailer constructs a Mailer instance.
func NewMailer(cfg SMTPConfig, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Handle delivers a queued email.
func (m *Mailer) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if m.cfg.Host == "" {
		m.logger.Info("mail delivery disabled, dropping message",
			slog.String("to", payload.To), slog.String("subject", payload.Subject))
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, payload.To, payload.Subject, payload.Body)
	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{payload.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// EventSweepJob flips past-dated upcoming events to completed.
type EventSweepJob struct {
	events *events.Service
	logger *slog.Logger
}

// NewEventSweepJob constructs the sweep handler.
func NewEventSweepJob(service *events.Service, logger *slog.Logger) *EventSweepJob {
	return &EventSweepJob{events: service, logger: logger}
}

// Handle runs one sweep pass.
func (j *EventSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	started := time.Now()
	flipped, err := j.events.CompletePast(ctx)
	if err != nil {
		return fmt.Errorf("event sweep: %w", err)
	}
	if flipped > 0 {
		j.logger.Info("event sweep completed",
			slog.Int64("flipped", flipped),
			slog.Duration("took", time.Since(started)))
	}
	return nil
}
