package attendance

import (
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}
	return errs.Err()
}

// RangeFilter selects entries for an employee between two calendar dates (inclusive).
type RangeFilter struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`

	// Parsed by Validate
	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

// Validate parses From and To. EmployeeID is only required when requireEmployee is set.
func (f *RangeFilter) Validate(requireEmployee bool) error {
	var errs validator.ValidationErrors

	if requireEmployee {
		if validator.IsEmpty(f.EmployeeID) {
			errs.Add("employee_id", "employee_id is required")
		} else if !validator.IsValidUUID(f.EmployeeID) {
			errs.Add("employee_id", "employee_id must be a valid UUID")
		}
	}

	from, ok := validator.IsValidDate(f.From)
	if !ok {
		errs.Add("from", "from must be a date in YYYY-MM-DD format")
	}
	to, ok := validator.IsValidDate(f.To)
	if !ok {
		errs.Add("to", "to must be a date in YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errs
	}
	if from.After(to) {
		return ErrInvalidDateRange
	}

	f.FromDate, f.ToDate = from, to
	return nil
}

type EntryResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	EntryType  EntryType `json:"entry_type"`
	Timestamp  string    `json:"timestamp"`
	Notes      *string   `json:"notes,omitempty"`
}

type WorkDayResponse struct {
	Date          string          `json:"date"`
	WorkedHours   decimal.Decimal `json:"worked_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Worked        bool            `json:"worked"`
}

type StatusResponse struct {
	Date      string          `json:"date"`
	ClockedIn bool            `json:"clocked_in"`
	Entries   []EntryResponse `json:"entries"`
	Today     WorkDayResponse `json:"today"`
}

type SummaryResponse struct {
	EmployeeID         string            `json:"employee_id"`
	From               string            `json:"from"`
	To                 string            `json:"to"`
	DaysWorked         int               `json:"days_worked"`
	TotalOvertimeHours decimal.Decimal   `json:"total_overtime_hours"`
	Days               []WorkDayResponse `json:"days"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		EntryType:  e.EntryType,
		Timestamp:  e.Timestamp.Format(time.RFC3339),
		Notes:      e.Notes,
	}
}

func NewWorkDayResponse(d WorkDayResult) WorkDayResponse {
	return WorkDayResponse{
		Date:          d.Date.Format(validator.DateLayout),
		WorkedHours:   d.WorkedHours,
		OvertimeHours: d.OvertimeHours,
		Worked:        d.Worked,
	}
}
