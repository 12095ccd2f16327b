package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for clock entries.
// All methods take companyID to keep tenants isolated.
type AttendanceRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)

	// ListByEmployeeAndRange returns entries with start <= timestamp < end, ordered by timestamp.
	ListByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Entry, error)

	// GetLatest returns the most recent entry, or nil when the employee has none.
	GetLatest(ctx context.Context, companyID, employeeID string) (*Entry, error)
}
