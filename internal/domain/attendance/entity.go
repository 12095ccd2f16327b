package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeClockIn  EntryType = "CLOCK_IN"
	EntryTypeClockOut EntryType = "CLOCK_OUT"
)

func (t EntryType) IsValid() bool {
	return t == EntryTypeClockIn || t == EntryTypeClockOut
}

// Entry is a single clock event. Entries are append-only: never updated or deleted.
type Entry struct {
	ID         string
	CompanyID  string
	EmployeeID string
	EntryType  EntryType
	Timestamp  time.Time
	Notes      *string
	CreatedAt  time.Time
}

// WorkDayResult is the derived view of one calendar day of entries.
type WorkDayResult struct {
	Date          time.Time
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	Worked        bool
}

// PeriodResult aggregates WorkDayResults over an inclusive date range.
type PeriodResult struct {
	DaysWorked         int
	TotalOvertimeHours decimal.Decimal
	Days               []WorkDayResult
}
