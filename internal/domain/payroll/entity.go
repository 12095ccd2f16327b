package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// PayslipStatus enum
type PayslipStatus string

const (
	StatusDraft     PayslipStatus = "DRAFT"
	StatusGenerated PayslipStatus = "GENERATED"
	StatusApproved  PayslipStatus = "APPROVED"
	StatusPaid      PayslipStatus = "PAID"
	StatusCancelled PayslipStatus = "CANCELLED"
)

var statusDisplayNames = map[PayslipStatus]string{
	StatusDraft:     "Draft",
	StatusGenerated: "Generated",
	StatusApproved:  "Approved",
	StatusPaid:      "Paid",
	StatusCancelled: "Cancelled",
}

func (s PayslipStatus) IsValid() bool {
	_, ok := statusDisplayNames[s]
	return ok
}

func (s PayslipStatus) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// Payslip is one employee's pay for a period. Derived amounts are only
// refreshed by Recalculate.
type Payslip struct {
	ID                 string
	PayslipNumber      string
	EmployeeID         string
	CompanyID          string
	PayPeriodStart     time.Time
	PayPeriodEnd       time.Time
	PayDate            time.Time
	MonthlySalary      decimal.Decimal
	DailySalary        decimal.Decimal
	DaysWorked         int
	WorkingDays        int
	BasicSalary        decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimeRate       decimal.Decimal
	OvertimeAmount     decimal.Decimal
	Allowances         decimal.Decimal
	Bonuses            decimal.Decimal
	GrossSalary        decimal.Decimal
	TaxRate            decimal.Decimal
	TaxDeduction       decimal.Decimal
	InsuranceDeduction decimal.Decimal
	OtherDeductions    decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetSalary          decimal.Decimal
	Status             PayslipStatus
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// Recalculate derives every computed amount from the stored inputs.
func (p *Payslip) Recalculate() {
	p.DailySalary = DailyRate(p.MonthlySalary, p.WorkingDays)
	p.BasicSalary = money.Round2(p.DailySalary.Mul(decimal.NewFromInt(int64(p.DaysWorked))))
	p.OvertimeAmount = money.Round2(p.OvertimeHours.Mul(p.OvertimeRate))
	p.GrossSalary = p.BasicSalary.Add(p.OvertimeAmount).Add(p.Allowances).Add(p.Bonuses)
	p.TaxDeduction = money.Percent(p.GrossSalary, p.TaxRate)
	p.TotalDeductions = p.TaxDeduction.Add(p.InsuranceDeduction).Add(p.OtherDeductions)
	p.NetSalary = p.GrossSalary.Sub(p.TotalDeductions)
}

// Statistics summarizes payslips whose pay date falls in a range.
type Statistics struct {
	TotalCount   int64
	PaidCount    int64
	TotalPaidNet decimal.Decimal
}

// WorkingDaysInPeriod counts Monday to Friday dates in [start, end].
func WorkingDaysInPeriod(start, end time.Time) int {
	from := dateOnly(start)
	until := dateOnly(end)

	days := 0
	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// DailyRate is monthly / workingDays rounded to cents, or zero without working days.
func DailyRate(monthly decimal.Decimal, workingDays int) decimal.Decimal {
	if workingDays <= 0 {
		return decimal.Zero
	}
	return money.Round2(monthly.Div(decimal.NewFromInt(int64(workingDays))))
}

// SequenceKey scopes the payslip counter to a company.
func SequenceKey(companyID string) string {
	return "payslip:" + companyID
}

// FormatNumber builds PS{yyyy}{MM}{seq:04} from the period start.
func FormatNumber(periodStart time.Time, seq int64) string {
	return fmt.Sprintf("PS%04d%02d%04d", periodStart.Year(), int(periodStart.Month()), seq)
}

// PreviewNumber identifies a payslip that is never persisted.
func PreviewNumber(now time.Time) string {
	return fmt.Sprintf("PSL-%d", now.UnixMilli())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
