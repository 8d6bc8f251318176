package registrations

import (
	"encoding/csv"
	"io"
)

// WriteLedgerCSV serialises the registration ledger to CSV for the admin
// download.
func WriteLedgerCSV(w io.Writer, ledger []Registration) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Name", "Roll No", "Email", "Phone", "Department", "Semester", "Event", "Message", "Registered At"}); err != nil {
		return err
	}
	for _, reg := range ledger {
		record := []string{
			reg.Name,
			reg.RollNo,
			reg.Email,
			reg.Phone,
			reg.Department,
			reg.Semester,
			reg.EventTitle,
			reg.Message,
			reg.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
