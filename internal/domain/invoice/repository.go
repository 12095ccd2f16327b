package invoice

import (
	"context"
	"time"
)

// InvoiceRepository persists the invoice aggregate. Every method is scoped by companyID
// except ListAllOverdue, which serves the reminder job.
type InvoiceRepository interface {
	// Create inserts the invoice and its items.
	Create(ctx context.Context, inv Invoice) (Invoice, error)

	// GetByID loads the invoice with its items ordered by position.
	GetByID(ctx context.Context, id string, companyID string) (Invoice, error)

	// List returns invoices without items.
	List(ctx context.Context, companyID string, filter InvoiceFilter) ([]Invoice, int64, error)

	ListOverdue(ctx context.Context, companyID string, today time.Time) ([]Invoice, error)
	ListAllOverdue(ctx context.Context, today time.Time) ([]Invoice, error)

	// Update writes header fields, derived amounts, status and payment data.
	Update(ctx context.Context, inv Invoice) error
	ReplaceItems(ctx context.Context, invoiceID string, items []Item) error
	Delete(ctx context.Context, id string, companyID string) error

	// MaxSequence returns the largest sequence stored under prefix, or zero.
	MaxSequence(ctx context.Context, companyID string, prefix string) (int64, error)

	Statistics(ctx context.Context, companyID string, today time.Time, year int) (Statistics, error)
}
