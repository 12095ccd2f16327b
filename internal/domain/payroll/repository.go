package payroll

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayslipRepository interface {
	// Create returns ErrPayslipPeriodOverlap when the unique period index rejects the row.
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	List(ctx context.Context, companyID string, filter PayslipFilter) ([]Payslip, int64, error)

	// Update persists inputs, derived amounts, notes and status.
	Update(ctx context.Context, payslip Payslip) error
	UpdateStatus(ctx context.Context, id string, companyID string, status PayslipStatus) error
	Delete(ctx context.Context, id string, companyID string) error

	// ExistsOverlapping reports a payslip with start <= end AND end >= start.
	ExistsOverlapping(ctx context.Context, companyID, employeeID string, start, end time.Time) (bool, error)

	// MaxSequence returns the highest sequence used in the company's payslip numbers.
	MaxSequence(ctx context.Context, companyID string) (int64, error)

	Statistics(ctx context.Context, companyID string, from, to time.Time) (Statistics, error)
}
