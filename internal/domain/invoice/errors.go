package invoice

import "errors"

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceItemNotFound   = errors.New("invoice item not found")
	ErrInvoiceNumberExists   = errors.New("invoice number already exists")
	ErrInvoiceAlreadyPaid    = errors.New("invoice is already paid")
	ErrInvoiceNotDraft       = errors.New("only draft invoices can be deleted")
	ErrInvoiceClosed         = errors.New("items cannot change on a paid or cancelled invoice")
	ErrPaymentAmountMismatch = errors.New("payment amount must equal the invoice total")
	ErrPaidViaPaymentOnly    = errors.New("use the payment endpoint to mark an invoice as paid")
	ErrInvalidStatus         = errors.New("invalid invoice status")
	ErrInvalidDueDate        = errors.New("due date must not be before issue date")
	ErrRecipientMissing      = errors.New("invoice has no client email address")
)
