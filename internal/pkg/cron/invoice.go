package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
)

// InvoiceJobs contains invoice-related cron jobs
type InvoiceJobs struct {
	invoiceService invoice.InvoiceService
	interval       time.Duration
}

// NewInvoiceJobs creates invoice cron jobs
func NewInvoiceJobs(invoiceService invoice.InvoiceService, interval time.Duration) *InvoiceJobs {
	return &InvoiceJobs{
		invoiceService: invoiceService,
		interval:       interval,
	}
}

// RegisterJobs registers all invoice-related cron jobs
func (j *InvoiceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("send_overdue_invoice_reminders", j.interval, j.SendOverdueReminders)
}

// SendOverdueReminders emails the client of every invoice past its due date
func (j *InvoiceJobs) SendOverdueReminders(ctx context.Context) error {
	_, err := j.invoiceService.SendOverdueReminders(ctx)
	return err
}
