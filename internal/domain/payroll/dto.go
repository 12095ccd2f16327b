package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

// GenerateRequest drives both persisted and preview generation. Numeric inputs
// are parsed later under the configured parse-error policy.
type GenerateRequest struct {
	EmployeeID         string      `json:"employee_id"`
	PayPeriodStart     string      `json:"pay_period_start"`
	PayPeriodEnd       string      `json:"pay_period_end"`
	PayDate            *string     `json:"pay_date,omitempty"`
	MonthlySalary      money.Input `json:"monthly_salary,omitempty"`
	Allowances         money.Input `json:"allowances,omitempty"`
	Bonuses            money.Input `json:"bonuses,omitempty"`
	OtherDeductions    money.Input `json:"other_deductions,omitempty"`
	OvertimeRate       money.Input `json:"overtime_rate,omitempty"`
	TaxRate            money.Input `json:"tax_rate,omitempty"`
	InsuranceDeduction money.Input `json:"insurance_deduction,omitempty"`
	Notes              *string     `json:"notes,omitempty"`

	// Parsed by Validate
	StartDate   time.Time  `json:"-"`
	EndDate     time.Time  `json:"-"`
	PayDateTime *time.Time `json:"-"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	start, okStart := validator.IsValidDate(r.PayPeriodStart)
	if !okStart {
		errs.Add("pay_period_start", "pay_period_start must be a date in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.PayPeriodEnd)
	if !okEnd {
		errs.Add("pay_period_end", "pay_period_end must be a date in YYYY-MM-DD format")
	}

	if r.PayDate != nil && strings.TrimSpace(*r.PayDate) != "" {
		payDate, ok := validator.IsValidDate(*r.PayDate)
		if !ok {
			errs.Add("pay_date", "pay_date must be a date in YYYY-MM-DD format")
		} else {
			r.PayDateTime = &payDate
		}
	}

	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}

	if len(errs) > 0 {
		return errs
	}
	if start.After(end) {
		return ErrInvalidPeriod
	}

	r.StartDate, r.EndDate = start, end
	return nil
}

// ========== UPDATE DTOs ==========

type UpdatePayslipRequest struct {
	ID              string       `json:"-"`
	Allowances      *money.Input `json:"allowances,omitempty"`
	Bonuses         *money.Input `json:"bonuses,omitempty"`
	OtherDeductions *money.Input `json:"other_deductions,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
	Status          *string      `json:"status,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Status != nil && !PayslipStatus(strings.ToUpper(*r.Status)).IsValid() {
		errs.Add("status", "status must be one of DRAFT, GENERATED, APPROVED, PAID, CANCELLED")
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}

	return errs.Err()
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Parse returns the requested status or ErrInvalidStatus.
func (r UpdateStatusRequest) Parse() (PayslipStatus, error) {
	status := PayslipStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ========== QUERY DTOs ==========

type PayslipFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *PayslipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil {
		upper := strings.ToUpper(*f.Status)
		if !PayslipStatus(upper).IsValid() {
			errs.Add("status", "invalid status")
		}
		f.Status = &upper
	}
	f.Page, f.Limit = validator.Pagination(f.Page, f.Limit)

	return errs.Err()
}

type StatisticsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors

	from, ok := validator.IsValidDate(r.From)
	if !ok {
		errs.Add("from", "from must be a date in YYYY-MM-DD format")
	}
	to, ok := validator.IsValidDate(r.To)
	if !ok {
		errs.Add("to", "to must be a date in YYYY-MM-DD format")
	}
	if len(errs) > 0 {
		return errs
	}
	if from.After(to) {
		return ErrInvalidPeriod
	}

	r.FromDate, r.ToDate = from, to
	return nil
}

// ========== RESPONSE DTOs ==========

type PayslipResponse struct {
	ID                 string          `json:"id,omitempty"`
	PayslipNumber      string          `json:"payslip_number"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	PayPeriodStart     string          `json:"pay_period_start"`
	PayPeriodEnd       string          `json:"pay_period_end"`
	PayDate            string          `json:"pay_date"`
	MonthlySalary      decimal.Decimal `json:"monthly_salary"`
	DailySalary        decimal.Decimal `json:"daily_salary"`
	WorkingDays        int             `json:"working_days"`
	DaysWorked         int             `json:"days_worked"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimeRate       decimal.Decimal `json:"overtime_rate"`
	OvertimeAmount     decimal.Decimal `json:"overtime_amount"`
	Allowances         decimal.Decimal `json:"allowances"`
	Bonuses            decimal.Decimal `json:"bonuses"`
	GrossSalary        decimal.Decimal `json:"gross_salary"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	TaxDeduction       decimal.Decimal `json:"tax_deduction"`
	InsuranceDeduction decimal.Decimal `json:"insurance_deduction"`
	OtherDeductions    decimal.Decimal `json:"other_deductions"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetSalary          decimal.Decimal `json:"net_salary"`
	Status             PayslipStatus   `json:"status"`
	StatusDisplayName  string          `json:"status_display_name"`
	Notes              *string         `json:"notes,omitempty"`
	CreatedAt          *string         `json:"created_at,omitempty"`
}

type ListPayslipResponse struct {
	Data       []PayslipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type StatisticsResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalCount   int64           `json:"total_count"`
	PaidCount    int64           `json:"paid_count"`
	TotalPaidNet decimal.Decimal `json:"total_paid_net"`
}

type SendResponse struct {
	PayslipNumber string `json:"payslip_number"`
	SentTo        string `json:"sent_to"`
	ArchivePath   string `json:"archive_path"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                 p.ID,
		PayslipNumber:      p.PayslipNumber,
		EmployeeID:         p.EmployeeID,
		EmployeeName:       p.EmployeeName,
		PayPeriodStart:     p.PayPeriodStart.Format(validator.DateLayout),
		PayPeriodEnd:       p.PayPeriodEnd.Format(validator.DateLayout),
		PayDate:            p.PayDate.Format(validator.DateLayout),
		MonthlySalary:      p.MonthlySalary,
		DailySalary:        p.DailySalary,
		WorkingDays:        p.WorkingDays,
		DaysWorked:         p.DaysWorked,
		BasicSalary:        p.BasicSalary,
		OvertimeHours:      p.OvertimeHours,
		OvertimeRate:       p.OvertimeRate,
		OvertimeAmount:     p.OvertimeAmount,
		Allowances:         p.Allowances,
		Bonuses:            p.Bonuses,
		GrossSalary:        p.GrossSalary,
		TaxRate:            p.TaxRate,
		TaxDeduction:       p.TaxDeduction,
		InsuranceDeduction: p.InsuranceDeduction,
		OtherDeductions:    p.OtherDeductions,
		TotalDeductions:    p.TotalDeductions,
		NetSalary:          p.NetSalary,
		Status:             p.Status,
		StatusDisplayName:  p.Status.DisplayName(),
		Notes:              p.Notes,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &created
	}
	return resp
}
