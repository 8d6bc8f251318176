package registrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/css-society/portal/internal/platform/httpx"
)

type mockRepository struct {
	entries map[int64]*Registration
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{entries: map[int64]*Registration{}, nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, input Input) (*Registration, error) {
	for _, existing := range m.entries {
		if existing.RollNo == input.RollNo && existing.EventTitle == input.EventTitle {
			return nil, httpx.ErrDuplicate
		}
	}
	reg := &Registration{
		ID: m.nextID, Name: input.Name, RollNo: input.RollNo, Email: input.Email,
		Phone: input.Phone, Department: input.Department, Semester: input.Semester,
		EventTitle: input.EventTitle, Message: input.Message,
	}
	m.entries[reg.ID] = reg
	m.nextID++
	return reg, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Registration, error) {
	result := []Registration{}
	for _, reg := range m.entries {
		result = append(result, *reg)
	}
	return result, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.entries[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

var _ Repository = (*mockRepository)(nil)

func TestRegisterNormalizes(t *testing.T) {
	service := NewService(newMockRepository())

	reg, err := service.Register(context.Background(), Input{
		Name: " Some Student ", RollNo: " 001-cs-24 ", Email: "A@B.Test",
		Department: "CS", Semester: "3", EventTitle: " Orientation ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Some Student", reg.Name)
	assert.Equal(t, "001-CS-24", reg.RollNo)
	assert.Equal(t, "a@b.test", reg.Email)
	assert.Equal(t, "Orientation", reg.EventTitle)
	assert.Equal(t, "Not Provided", reg.Phone)
}

func TestRegisterDuplicatePerEvent(t *testing.T) {
	service := NewService(newMockRepository())

	first := Input{
		Name: "Some Student", RollNo: "001-CS-24", Email: "a@b.test",
		Department: "CS", Semester: "3", EventTitle: "Orientation",
	}
	_, err := service.Register(context.Background(), first)
	require.NoError(t, err)

	// Same roll number, different case still collides.
	_, err = service.Register(context.Background(), Input{
		Name: "Some Student", RollNo: "001-cs-24", Email: "a@b.test",
		Department: "CS", Semester: "3", EventTitle: "Orientation",
	})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)

	// A different event is a fresh registration.
	second := first
	second.EventTitle = "Hackathon"
	_, err = service.Register(context.Background(), second)
	assert.NoError(t, err)
}
