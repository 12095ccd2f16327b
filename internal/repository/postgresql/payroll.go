package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `
	ps.id, ps.payslip_number, ps.employee_id, ps.company_id,
	ps.pay_period_start, ps.pay_period_end, ps.pay_date,
	ps.monthly_salary, ps.daily_salary, ps.days_worked, ps.working_days, ps.basic_salary,
	ps.overtime_hours, ps.overtime_rate, ps.overtime_amount, ps.allowances, ps.bonuses, ps.gross_salary,
	ps.tax_rate, ps.tax_deduction, ps.insurance_deduction, ps.other_deductions, ps.total_deductions,
	ps.net_salary, ps.status, ps.notes, ps.created_at, ps.updated_at,
	e.full_name, e.email
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.PayslipNumber, &p.EmployeeID, &p.CompanyID,
		&p.PayPeriodStart, &p.PayPeriodEnd, &p.PayDate,
		&p.MonthlySalary, &p.DailySalary, &p.DaysWorked, &p.WorkingDays, &p.BasicSalary,
		&p.OvertimeHours, &p.OvertimeRate, &p.OvertimeAmount, &p.Allowances, &p.Bonuses, &p.GrossSalary,
		&p.TaxRate, &p.TaxDeduction, &p.InsuranceDeduction, &p.OtherDeductions, &p.TotalDeductions,
		&p.NetSalary, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeEmail,
	)
	return p, err
}

func (r *payslipRepository) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, payslip_number, employee_id, company_id, pay_period_start, pay_period_end, pay_date,
			monthly_salary, daily_salary, days_worked, working_days, basic_salary,
			overtime_hours, overtime_rate, overtime_amount, allowances, bonuses, gross_salary,
			tax_rate, tax_deduction, insurance_deduction, other_deductions, total_deductions,
			net_salary, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.PayslipNumber, p.EmployeeID, p.CompanyID, p.PayPeriodStart, p.PayPeriodEnd, p.PayDate,
		p.MonthlySalary, p.DailySalary, p.DaysWorked, p.WorkingDays, p.BasicSalary,
		p.OvertimeHours, p.OvertimeRate, p.OvertimeAmount, p.Allowances, p.Bonuses, p.GrossSalary,
		p.TaxRate, p.TaxDeduction, p.InsuranceDeduction, p.OtherDeductions, p.TotalDeductions,
		p.NetSalary, p.Status, p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isConstraintViolation(err, "ex_payslip_period") || isConstraintViolation(err, "uk_payslip_employee_start") {
			return payroll.Payslip{}, payroll.ErrPayslipPeriodOverlap
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + `
		FROM payslips ps
		JOIN employees e ON ps.employee_id = e.id
		WHERE ps.id = $1 AND ps.company_id = $2
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payslips ps
		JOIN employees e ON ps.employee_id = e.id
		WHERE ps.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND ps.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND ps.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s
		ORDER BY ps.pay_period_start DESC, ps.payslip_number DESC
		LIMIT $%d OFFSET $%d
	`, payslipColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, totalCount, nil
}

func (r *payslipRepository) Update(ctx context.Context, p payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			allowances = $3, bonuses = $4, other_deductions = $5,
			daily_salary = $6, basic_salary = $7, overtime_amount = $8, gross_salary = $9,
			tax_deduction = $10, total_deductions = $11, net_salary = $12,
			notes = $13, status = $14, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		p.ID, p.CompanyID,
		p.Allowances, p.Bonuses, p.OtherDeductions,
		p.DailySalary, p.BasicSalary, p.OvertimeAmount, p.GrossSalary,
		p.TaxDeduction, p.TotalDeductions, p.NetSalary,
		p.Notes, p.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.PayslipStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE payslips SET status = $3, updated_at = NOW() WHERE id = $1 AND company_id = $2`,
		id, companyID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) ExistsOverlapping(ctx context.Context, companyID, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payslips
			WHERE company_id = $1 AND employee_id = $2
			  AND pay_period_start <= $4 AND pay_period_end >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping payslips: %w", err)
	}
	return exists, nil
}

// MaxSequence reads the seq part of PS{yyyy}{MM}{seq} numbers; seq is at least
// four digits and grows past 9999.
func (r *payslipRepository) MaxSequence(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(payslip_number FROM 9) AS BIGINT)), 0)
		FROM payslips
		WHERE company_id = $1 AND payslip_number ~ '^PS[0-9]{6}[0-9]{4,}$'
	`

	var maxSeq int64
	if err := q.QueryRow(ctx, query, companyID).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to read payslip sequence: %w", err)
	}
	return maxSeq, nil
}

func (r *payslipRepository) Statistics(ctx context.Context, companyID string, from, to time.Time) (payroll.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PAID'),
			COALESCE(SUM(net_salary) FILTER (WHERE status = 'PAID'), 0)
		FROM payslips
		WHERE company_id = $1 AND pay_date BETWEEN $2 AND $3
	`

	var stats payroll.Statistics
	err := q.QueryRow(ctx, query, companyID, from, to).Scan(&stats.TotalCount, &stats.PaidCount, &stats.TotalPaidNet)
	if err != nil {
		return payroll.Statistics{}, fmt.Errorf("failed to get payslip statistics: %w", err)
	}
	return stats, nil
}
