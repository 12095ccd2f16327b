package invoice

import (
	"context"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
)

// InvoiceService manages invoices for managers of the actor's company.
type InvoiceService interface {
	Create(ctx context.Context, actor user.Actor, req CreateInvoiceRequest) (InvoiceResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (InvoiceResponse, error)
	List(ctx context.Context, actor user.Actor, filter InvoiceFilter) (ListInvoiceResponse, error)
	ListOverdue(ctx context.Context, actor user.Actor) ([]InvoiceResponse, error)
	Statistics(ctx context.Context, actor user.Actor) (StatisticsResponse, error)

	// Update overwrites client fields, dates, tax rate, notes, terms and project, and replaces the items.
	Update(ctx context.Context, actor user.Actor, req UpdateInvoiceRequest) (InvoiceResponse, error)
	UpdateStatus(ctx context.Context, actor user.Actor, id string, req UpdateStatusRequest) (InvoiceResponse, error)
	AddItem(ctx context.Context, actor user.Actor, req AddItemRequest) (InvoiceResponse, error)
	RemoveItem(ctx context.Context, actor user.Actor, invoiceID, itemID string) (InvoiceResponse, error)
	RecordPayment(ctx context.Context, actor user.Actor, id string, req PaymentRequest) (InvoiceResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error

	RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error)

	// Send archives the PDF, emails the client and moves a DRAFT invoice to SENT.
	Send(ctx context.Context, actor user.Actor, id string) (SendResponse, error)

	// SendOverdueReminders emails the clients of every overdue invoice and returns how many were sent.
	SendOverdueReminders(ctx context.Context) (int, error)
}
