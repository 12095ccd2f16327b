package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
)

// PeriodCalculator turns stored entries into worked days and overtime.
type PeriodCalculator interface {
	ComputePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (PeriodResult, error)
}

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	ClockIn(ctx context.Context, actor user.Actor, req ClockRequest) (EntryResponse, error)
	ClockOut(ctx context.Context, actor user.Actor, req ClockRequest) (EntryResponse, error)

	// Status reports today's entries and whether the actor is currently clocked in.
	Status(ctx context.Context, actor user.Actor) (StatusResponse, error)

	ListMine(ctx context.Context, actor user.Actor, filter RangeFilter) ([]EntryResponse, error)
	List(ctx context.Context, actor user.Actor, filter RangeFilter) ([]EntryResponse, error)

	// WorkSummary exposes ComputePeriod for an employee and date range.
	WorkSummary(ctx context.Context, actor user.Actor, filter RangeFilter) (SummaryResponse, error)
}
