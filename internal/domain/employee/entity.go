package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	CompanyID    string
	UserID       *string
	FullName     string
	Email        *string
	EmployeeCode *string
	BaseSalary   *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MonthlySalary returns the base salary, or zero when none is on file.
func (e Employee) MonthlySalary() decimal.Decimal {
	if e.BaseSalary == nil {
		return decimal.Zero
	}
	return *e.BaseSalary
}
