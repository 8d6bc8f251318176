package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendEmailTask(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{
		To: "inbox@portal.local", Subject: "hello", Body: "world",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSendEmail, task.Type())

	var payload SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "inbox@portal.local", payload.To)
	assert.Equal(t, "hello", payload.Subject)
}

func TestMailerDisabledDropsMessage(t *testing.T) {
	mailer := NewMailer(SMTPConfig{}, slog.Default())

	task, err := NewSendEmailTask(SendEmailPayload{To: "a@b.test", Subject: "s"})
	require.NoError(t, err)
	assert.NoError(t, mailer.Handle(context.Background(), task))
}

func TestMailerSkipsRetryOnGarbagePayload(t *testing.T) {
	mailer := NewMailer(SMTPConfig{}, slog.Default())

	err := mailer.Handle(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNewEventSweepTask(t *testing.T) {
	task := NewEventSweepTask()
	assert.Equal(t, TaskTypeEventSweep, task.Type())
	assert.Empty(t, task.Payload())
}
