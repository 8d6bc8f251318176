package contacts

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/css-society/portal/internal/platform/httpx"
	"github.com/css-society/portal/jobs"
)

type mockRepository struct {
	messages map[int64]*Contact
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{messages: map[int64]*Contact{}, nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, input Input) (*Contact, error) {
	msg := &Contact{
		ID: m.nextID, Name: input.Name, Email: input.Email,
		Subject: input.Subject, Body: input.Body, Priority: input.Priority,
	}
	m.messages[msg.ID] = msg
	m.nextID++
	return msg, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Contact, error) {
	result := []Contact{}
	for _, msg := range m.messages {
		result = append(result, *msg)
	}
	return result, nil
}

func (m *mockRepository) SetRead(ctx context.Context, id int64, read bool) (*Contact, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	msg.Read = read
	return msg, nil
}

var _ Repository = (*mockRepository)(nil)

type mockEnqueuer struct {
	payloads []jobs.SendEmailPayload
	err      error
}

func (m *mockEnqueuer) EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.payloads = append(m.payloads, payload)
	return &asynq.TaskInfo{}, nil
}

func newTestService(enqueuer Enqueuer) (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, enqueuer, "inbox@portal.local", slog.Default()), repo
}

func TestSubmitQueuesNotification(t *testing.T) {
	enqueuer := &mockEnqueuer{}
	service, _ := newTestService(enqueuer)

	msg, err := service.Submit(context.Background(), Input{
		Name: " Visitor ", Email: "Visitor@Mail.Test", Subject: " Hello ",
		Body: "I have a question.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Visitor", msg.Name)
	assert.Equal(t, "visitor@mail.test", msg.Email)
	assert.Equal(t, PriorityNormal, msg.Priority)

	require.Len(t, enqueuer.payloads, 1)
	assert.Equal(t, "inbox@portal.local", enqueuer.payloads[0].To)
	assert.Contains(t, enqueuer.payloads[0].Subject, "Hello")
	assert.Contains(t, enqueuer.payloads[0].Body, "visitor@mail.test")
}

func TestSubmitRejectsUnknownPriority(t *testing.T) {
	service, repo := newTestService(&mockEnqueuer{})

	_, err := service.Submit(context.Background(), Input{
		Name: "Visitor", Email: "v@mail.test", Subject: "Hello",
		Body: "question", Priority: Priority("urgent"),
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Empty(t, repo.messages)
}

func TestSubmitSurvivesQueueFailure(t *testing.T) {
	enqueuer := &mockEnqueuer{err: context.DeadlineExceeded}
	service, repo := newTestService(enqueuer)

	msg, err := service.Submit(context.Background(), Input{
		Name: "Visitor", Email: "v@mail.test", Subject: "Hello",
		Body: "question", Priority: PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, msg.Priority)
	assert.Len(t, repo.messages, 1)
}

func TestSetRead(t *testing.T) {
	service, repo := newTestService(nil)
	repo.messages[1] = &Contact{ID: 1, Subject: "Hello"}
	repo.nextID = 2

	msg, err := service.SetRead(context.Background(), 1, true)
	require.NoError(t, err)
	assert.True(t, msg.Read)

	_, err = service.SetRead(context.Background(), 99, true)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
