package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `
	i.id, i.company_id, i.project_id, i.created_by, i.invoice_number,
	i.client_name, i.client_email, i.client_address, i.client_phone,
	i.issue_date, i.due_date, i.status,
	i.subtotal, i.tax_rate, i.tax_amount, i.total_amount, i.paid_amount, i.balance_amount,
	i.last_payment_date, i.notes, i.terms_and_conditions, i.created_at, i.updated_at,
	p.name
`

const invoiceFrom = `
	FROM invoices i
	LEFT JOIN projects p ON i.project_id = p.id
`

// openInvoice matches invoices whose due date can still make them overdue.
const openInvoice = `i.status NOT IN ('PAID', 'CANCELLED')`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ProjectID, &inv.CreatedBy, &inv.InvoiceNumber,
		&inv.ClientName, &inv.ClientEmail, &inv.ClientAddress, &inv.ClientPhone,
		&inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.BalanceAmount,
		&inv.LastPaymentDate, &inv.Notes, &inv.TermsAndConditions, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.ProjectName,
	)
	return inv, err
}

func (r *invoiceRepository) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Create inserts the header and the items. Callers run it inside a transaction.
func (r *invoiceRepository) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (
			id, company_id, project_id, created_by, invoice_number,
			client_name, client_email, client_address, client_phone,
			issue_date, due_date, status,
			subtotal, tax_rate, tax_amount, total_amount, paid_amount, balance_amount,
			last_payment_date, notes, terms_and_conditions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		inv.ID, inv.CompanyID, inv.ProjectID, inv.CreatedBy, inv.InvoiceNumber,
		inv.ClientName, inv.ClientEmail, inv.ClientAddress, inv.ClientPhone,
		inv.IssueDate, inv.DueDate, inv.Status,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.TotalAmount, inv.PaidAmount, inv.BalanceAmount,
		inv.LastPaymentDate, inv.Notes, inv.TermsAndConditions,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isConstraintViolation(err, "uk_invoice_number") {
			return invoice.Invoice{}, invoice.ErrInvoiceNumberExists
		}
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := r.insertItems(ctx, inv.ID, inv.Items); err != nil {
		return invoice.Invoice{}, err
	}
	return inv, nil
}

func (r *invoiceRepository) insertItems(ctx context.Context, invoiceID string, items []invoice.Item) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoice_items (id, invoice_id, description, item_type, quantity, unit_price, amount, time_log_ref, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, item := range items {
		_, err := q.Exec(ctx, query,
			item.ID, invoiceID, item.Description, item.ItemType,
			item.Quantity, item.UnitPrice, item.Amount, item.TimeLogRef, item.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID locks the invoice row when called inside a transaction.
func (r *invoiceRepository) GetByID(ctx context.Context, id string, companyID string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + invoiceColumns + invoiceFrom + ` WHERE i.id = $1 AND i.company_id = $2` + forUpdate(ctx, "i")

	inv, err := scanInvoice(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	inv.Items, err = r.getItems(ctx, inv.ID)
	if err != nil {
		return invoice.Invoice{}, err
	}
	return inv, nil
}

func (r *invoiceRepository) getItems(ctx context.Context, invoiceID string) ([]invoice.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, item_type, quantity, unit_price, amount, time_log_ref, position
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	defer rows.Close()

	items := []invoice.Item{}
	for rows.Next() {
		var item invoice.Item
		if err := rows.Scan(
			&item.ID, &item.Description, &item.ItemType, &item.Quantity,
			&item.UnitPrice, &item.Amount, &item.TimeLogRef, &item.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *invoiceRepository) List(ctx context.Context, companyID string, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := invoiceFrom + ` WHERE i.company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ProjectID != nil {
		baseQuery += fmt.Sprintf(" AND i.project_id = $%d", argIdx)
		args = append(args, *filter.ProjectID)
		argIdx++
	}
	if filter.Search != nil {
		baseQuery += fmt.Sprintf(" AND (i.invoice_number ILIKE $%d OR i.client_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s
		ORDER BY i.issue_date DESC, i.invoice_number DESC
		LIMIT $%d OFFSET $%d
	`, invoiceColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	invoices, err := r.queryInvoices(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, totalCount, nil
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, companyID string, today time.Time) ([]invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + invoiceFrom + `
		WHERE i.company_id = $1 AND ` + openInvoice + ` AND i.due_date < $2
		ORDER BY i.due_date
	`
	invoices, err := r.queryInvoices(ctx, query, companyID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListAllOverdue(ctx context.Context, today time.Time) ([]invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + invoiceFrom + `
		WHERE ` + openInvoice + ` AND i.due_date < $1
		ORDER BY i.company_id, i.due_date
	`
	invoices, err := r.queryInvoices(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices SET
			project_id = $3, client_name = $4, client_email = $5, client_address = $6, client_phone = $7,
			issue_date = $8, due_date = $9, status = $10,
			subtotal = $11, tax_rate = $12, tax_amount = $13, total_amount = $14,
			paid_amount = $15, balance_amount = $16, last_payment_date = $17,
			notes = $18, terms_and_conditions = $19, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		inv.ID, inv.CompanyID,
		inv.ProjectID, inv.ClientName, inv.ClientEmail, inv.ClientAddress, inv.ClientPhone,
		inv.IssueDate, inv.DueDate, inv.Status,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.TotalAmount,
		inv.PaidAmount, inv.BalanceAmount, inv.LastPaymentDate,
		inv.Notes, inv.TermsAndConditions,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoiceID string, items []invoice.Item) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice items: %w", err)
	}
	return r.insertItems(ctx, invoiceID, items)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// invoice_items rows go with the invoice through ON DELETE CASCADE
	tag, err := q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}

// MaxSequence parses the digits after "{prefix}-" in stored invoice numbers.
func (r *invoiceRepository) MaxSequence(ctx context.Context, companyID string, prefix string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM LENGTH($2) + 2) AS BIGINT)), 0)
		FROM invoices
		WHERE company_id = $1
		  AND LEFT(invoice_number, LENGTH($2) + 1) = $2 || '-'
		  AND SUBSTRING(invoice_number FROM LENGTH($2) + 2) ~ '^[0-9]+$'
	`

	var maxSeq int64
	if err := q.QueryRow(ctx, query, companyID, prefix).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to read invoice sequence: %w", err)
	}
	return maxSeq, nil
}

func (r *invoiceRepository) Statistics(ctx context.Context, companyID string, today time.Time, year int) (invoice.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE i.status = 'DRAFT'),
			COUNT(*) FILTER (WHERE i.status = 'PAID'),
			COUNT(*) FILTER (WHERE ` + openInvoice + ` AND i.due_date < $2),
			COALESCE(SUM(i.balance_amount) FILTER (WHERE ` + openInvoice + `), 0),
			COALESCE(SUM(i.paid_amount) FILTER (WHERE i.status = 'PAID' AND EXTRACT(YEAR FROM i.last_payment_date) = $3), 0)
		FROM invoices i
		WHERE i.company_id = $1
	`

	var stats invoice.Statistics
	err := q.QueryRow(ctx, query, companyID, today, year).Scan(
		&stats.TotalCount, &stats.DraftCount, &stats.PaidCount, &stats.OverdueCount,
		&stats.TotalOutstanding, &stats.YearlyRevenue,
	)
	if err != nil {
		return invoice.Statistics{}, fmt.Errorf("failed to get invoice statistics: %w", err)
	}
	return stats, nil
}
