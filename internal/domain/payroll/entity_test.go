package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysInPeriod(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"mon to fri", date(2025, 3, 10), date(2025, 3, 14), 5},
		{"full week", date(2025, 3, 10), date(2025, 3, 16), 5},
		{"weekend only", date(2025, 3, 15), date(2025, 3, 16), 0},
		{"march 2025", date(2025, 3, 1), date(2025, 3, 31), 21},
		{"single weekday", date(2025, 3, 12), date(2025, 3, 12), 1},
		{"inverted", date(2025, 3, 14), date(2025, 3, 10), 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WorkingDaysInPeriod(c.start, c.end), c.name)
	}
}

func TestDailyRate(t *testing.T) {
	assert.Equal(t, "6000", DailyRate(d("30000"), 5).String())
	assert.Equal(t, "1428.57", DailyRate(d("30000"), 21).String())
	assert.True(t, DailyRate(d("30000"), 0).IsZero())
}

func TestRecalculate_BasicOnly(t *testing.T) {
	p := Payslip{MonthlySalary: d("30000"), WorkingDays: 5, DaysWorked: 5}
	p.Recalculate()

	assert.Equal(t, "6000.00", p.DailySalary.StringFixed(2))
	assert.Equal(t, "30000.00", p.BasicSalary.StringFixed(2))
	assert.Equal(t, "30000.00", p.GrossSalary.StringFixed(2))
	assert.Equal(t, "30000.00", p.NetSalary.StringFixed(2))
}

func TestRecalculate_Invariants(t *testing.T) {
	p := Payslip{
		MonthlySalary:      d("25000"),
		WorkingDays:        21,
		DaysWorked:         19,
		OvertimeHours:      d("3.17"),
		OvertimeRate:       d("150.5"),
		Allowances:         d("1200"),
		Bonuses:            d("500.25"),
		TaxRate:            d("12.5"),
		InsuranceDeduction: d("300"),
		OtherDeductions:    d("45.10"),
	}
	p.Recalculate()

	assert.True(t, p.BasicSalary.Equal(p.DailySalary.Mul(decimal.NewFromInt(19))))
	assert.True(t, p.GrossSalary.Equal(p.BasicSalary.Add(p.OvertimeAmount).Add(p.Allowances).Add(p.Bonuses)))
	assert.True(t, p.TaxDeduction.Equal(p.GrossSalary.Mul(p.TaxRate).Div(decimal.NewFromInt(100)).Round(2)))
	assert.True(t, p.TotalDeductions.Equal(p.TaxDeduction.Add(p.InsuranceDeduction).Add(p.OtherDeductions)))
	assert.True(t, p.NetSalary.Equal(p.GrossSalary.Sub(p.TotalDeductions)))
	assert.Equal(t, "477.09", p.OvertimeAmount.StringFixed(2))
}

func TestRecalculate_Idempotent(t *testing.T) {
	p := Payslip{MonthlySalary: d("10000"), WorkingDays: 22, DaysWorked: 20, TaxRate: d("5")}
	p.Recalculate()
	first := p
	p.Recalculate()
	assert.Equal(t, first, p)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "PS2025030001", FormatNumber(date(2025, 3, 1), 1))
	assert.Equal(t, "PS2025120042", FormatNumber(date(2025, 12, 31), 42))
	assert.Equal(t, "PS20250310000", FormatNumber(date(2025, 3, 1), 10000))
	assert.Equal(t, "PSL-1741564800000", PreviewNumber(date(2025, 3, 10)))
}

func TestPayslipStatus(t *testing.T) {
	assert.True(t, StatusApproved.IsValid())
	assert.False(t, PayslipStatus("approved").IsValid())
	assert.Equal(t, "Cancelled", StatusCancelled.DisplayName())
	assert.Equal(t, "X", PayslipStatus("X").DisplayName())
}
