package registrations

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedgerCSV(t *testing.T) {
	ledger := []Registration{
		{
			ID: 1, Name: "Some Student", RollNo: "001-CS-24", Email: "a@b.test",
			Phone: "0300-0000000", Department: "CS", Semester: "3",
			EventTitle: "Orientation", Message: "see you there",
			CreatedAt: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		},
		{
			ID: 2, Name: "Other Student", RollNo: "002-CS-24", Email: "c@d.test",
			Phone: "Not Provided", Department: "SE", Semester: "5",
			EventTitle: "Hackathon",
			CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedgerCSV(&buf, ledger))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Name", "Roll No", "Email", "Phone", "Department", "Semester", "Event", "Message", "Registered At"}, records[0])
	assert.Equal(t, []string{"Some Student", "001-CS-24", "a@b.test", "0300-0000000", "CS", "3", "Orientation", "see you there", "2026-03-01 18:30"}, records[1])
	assert.Equal(t, "Hackathon", records[2][6])
	assert.Empty(t, records[2][7])
}

func TestWriteLedgerCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedgerCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
