package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ITEM DTOs ==========

type ItemRequest struct {
	Description string      `json:"description"`
	ItemType    string      `json:"item_type"`
	Quantity    money.Input `json:"quantity,omitempty"`
	UnitPrice   money.Input `json:"unit_price"`
	TimeLogRef  *string     `json:"time_log_ref,omitempty"`
}

// Parse validates the item and converts it to an Item without an ID.
// Quantity defaults to 1 and must be positive; only DISCOUNT lines may carry a negative price.
func (r ItemRequest) Parse(field string, errs *validator.ValidationErrors) Item {
	item := Item{
		Description: strings.TrimSpace(r.Description),
		ItemType:    ItemType(strings.ToUpper(strings.TrimSpace(r.ItemType))),
		Quantity:    decimal.NewFromInt(1),
		TimeLogRef:  r.TimeLogRef,
	}
	if item.ItemType == "" {
		item.ItemType = ItemFixedPrice
	}

	if item.Description == "" {
		errs.Add(field+".description", "description is required")
	} else if len(item.Description) > 500 {
		errs.Add(field+".description", "description must not exceed 500 characters")
	}
	if !item.ItemType.IsValid() {
		errs.Add(field+".item_type", "item_type must be one of FIXED_PRICE, TIME_BASED, EXPENSE, DISCOUNT")
	}

	if raw := strings.TrimSpace(string(r.Quantity)); raw != "" {
		qty, err := decimal.NewFromString(raw)
		if err != nil || !qty.IsPositive() {
			errs.Add(field+".quantity", "quantity must be a positive number")
		} else {
			item.Quantity = qty
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(string(r.UnitPrice)))
	switch {
	case err != nil:
		errs.Add(field+".unit_price", "unit_price must be a number")
	case price.IsNegative() && item.ItemType != ItemDiscount:
		errs.Add(field+".unit_price", "unit_price must be non-negative")
	default:
		item.UnitPrice = price
	}

	return item
}

type AddItemRequest struct {
	InvoiceID string `json:"-"`
	ItemRequest

	Item Item `json:"-"`
}

func (r *AddItemRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.InvoiceID) {
		errs.Add("invoice_id", "invoice_id must be a valid UUID")
	}
	r.Item = r.ItemRequest.Parse("item", &errs)
	return errs.Err()
}

// ========== INVOICE DTOs ==========

// DraftRequest holds the fields shared by create and update.
type DraftRequest struct {
	ProjectID          *string       `json:"project_id,omitempty"`
	ClientName         string        `json:"client_name"`
	ClientEmail        *string       `json:"client_email,omitempty"`
	ClientAddress      *string       `json:"client_address,omitempty"`
	ClientPhone        *string       `json:"client_phone,omitempty"`
	IssueDate          *string       `json:"issue_date,omitempty"`
	DueDate            *string       `json:"due_date,omitempty"`
	TaxRate            money.Input   `json:"tax_rate,omitempty"`
	Notes              *string       `json:"notes,omitempty"`
	TermsAndConditions *string       `json:"terms_and_conditions,omitempty"`
	Items              []ItemRequest `json:"items"`

	// Parsed by Validate
	IssueDateTime *time.Time      `json:"-"`
	DueDateTime   *time.Time      `json:"-"`
	TaxRateValue  decimal.Decimal `json:"-"`
	ParsedItems   []Item          `json:"-"`
}

func (r *DraftRequest) validate(errs *validator.ValidationErrors) {
	if r.ProjectID != nil && *r.ProjectID != "" && !validator.IsValidUUID(*r.ProjectID) {
		errs.Add("project_id", "project_id must be a valid UUID")
	}
	if len(r.ClientName) > 255 {
		errs.Add("client_name", "client_name must not exceed 255 characters")
	}
	if r.ClientEmail != nil && *r.ClientEmail != "" && !validator.IsValidEmail(*r.ClientEmail) {
		errs.Add("client_email", "client_email must be a valid email address")
	}

	if r.IssueDate != nil && *r.IssueDate != "" {
		if d, ok := validator.IsValidDate(*r.IssueDate); ok {
			r.IssueDateTime = &d
		} else {
			errs.Add("issue_date", "issue_date must be a date in YYYY-MM-DD format")
		}
	}
	if r.DueDate != nil && *r.DueDate != "" {
		if d, ok := validator.IsValidDate(*r.DueDate); ok {
			r.DueDateTime = &d
		} else {
			errs.Add("due_date", "due_date must be a date in YYYY-MM-DD format")
		}
	}

	r.TaxRateValue = decimal.Zero
	if raw := strings.TrimSpace(string(r.TaxRate)); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil || !money.ValidRate(rate) {
			errs.Add("tax_rate", "tax_rate must be a number between 0 and 100 with at most 2 decimals")
		} else {
			r.TaxRateValue = rate
		}
	}

	r.ParsedItems = make([]Item, 0, len(r.Items))
	for i, item := range r.Items {
		r.ParsedItems = append(r.ParsedItems, item.Parse(fmt.Sprintf("items[%d]", i), errs))
	}
}

type CreateInvoiceRequest struct {
	InvoiceNumber *string `json:"invoice_number,omitempty"`
	Status        *string `json:"status,omitempty"`
	DraftRequest

	StatusValue Status `json:"-"`
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.InvoiceNumber != nil && len(*r.InvoiceNumber) > 50 {
		errs.Add("invoice_number", "invoice_number must not exceed 50 characters")
	}
	r.StatusValue = StatusDraft
	if r.Status != nil && *r.Status != "" {
		status := Status(strings.ToUpper(*r.Status))
		if !status.IsValid() || status == StatusPaid {
			errs.Add("status", "status must be one of DRAFT, SENT, VIEWED, CANCELLED")
		}
		r.StatusValue = status
	}
	r.DraftRequest.validate(&errs)

	if err := errs.Err(); err != nil {
		return err
	}
	return r.checkDates()
}

type UpdateInvoiceRequest struct {
	ID string `json:"-"`
	DraftRequest
}

func (r *UpdateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if validator.IsEmpty(r.ClientName) {
		errs.Add("client_name", "client_name is required")
	}
	r.DraftRequest.validate(&errs)

	if err := errs.Err(); err != nil {
		return err
	}
	return r.checkDates()
}

func (r *DraftRequest) checkDates() error {
	if r.IssueDateTime != nil && r.DueDateTime != nil && r.DueDateTime.Before(*r.IssueDateTime) {
		return ErrInvalidDueDate
	}
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Parse returns the requested status. PAID is reserved for RecordPayment.
func (r UpdateStatusRequest) Parse() (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(r.Status)))
	if status == StatusPaid {
		return "", ErrPaidViaPaymentOnly
	}
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type PaymentRequest struct {
	Amount      money.Input `json:"amount"`
	PaymentDate *string     `json:"payment_date,omitempty"`

	AmountValue decimal.Decimal `json:"-"`
	Date        *time.Time      `json:"-"`
}

func (r *PaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	amount, err := decimal.NewFromString(strings.TrimSpace(string(r.Amount)))
	if err != nil || !amount.IsPositive() {
		errs.Add("amount", "amount must be a positive number")
	}
	r.AmountValue = amount

	if r.PaymentDate != nil && *r.PaymentDate != "" {
		if d, ok := validator.IsValidDate(*r.PaymentDate); ok {
			r.Date = &d
		} else {
			errs.Add("payment_date", "payment_date must be a date in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// ========== QUERY DTOs ==========

type InvoiceFilter struct {
	Status    *string `json:"status,omitempty"`
	Search    *string `json:"search,omitempty"`
	ProjectID *string `json:"project_id,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *InvoiceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil {
		upper := Status(strings.ToUpper(*f.Status))
		if !upper.IsValid() {
			errs.Add("status", "invalid status")
		}
		s := string(upper)
		f.Status = &s
	}
	if f.ProjectID != nil && !validator.IsValidUUID(*f.ProjectID) {
		errs.Add("project_id", "project_id must be a valid UUID")
	}
	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		if trimmed == "" {
			f.Search = nil
		} else {
			f.Search = &trimmed
		}
	}
	f.Page, f.Limit = validator.Pagination(f.Page, f.Limit)

	return errs.Err()
}

// ========== RESPONSE DTOs ==========

type ItemResponse struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	ItemType            ItemType        `json:"item_type"`
	ItemTypeDisplayName string          `json:"item_type_display_name"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Amount              decimal.Decimal `json:"amount"`
	TimeLogRef          *string         `json:"time_log_ref,omitempty"`
}

type InvoiceResponse struct {
	ID                 string          `json:"id"`
	InvoiceNumber      string          `json:"invoice_number"`
	ProjectID          *string         `json:"project_id,omitempty"`
	ProjectName        *string         `json:"project_name,omitempty"`
	ClientName         string          `json:"client_name"`
	ClientEmail        *string         `json:"client_email,omitempty"`
	ClientAddress      *string         `json:"client_address,omitempty"`
	ClientPhone        *string         `json:"client_phone,omitempty"`
	IssueDate          string          `json:"issue_date"`
	DueDate            string          `json:"due_date"`
	Status             Status          `json:"status"`
	StatusDisplayName  string          `json:"status_display_name"`
	IsOverdue          bool            `json:"is_overdue"`
	DaysOverdue        int             `json:"days_overdue,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	BalanceAmount      decimal.Decimal `json:"balance_amount"`
	LastPaymentDate    *string         `json:"last_payment_date,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	TermsAndConditions *string         `json:"terms_and_conditions,omitempty"`
	Items              []ItemResponse  `json:"items,omitempty"`
	CreatedAt          *string         `json:"created_at,omitempty"`
}

type ListInvoiceResponse struct {
	Data       []InvoiceResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type StatisticsResponse struct {
	TotalInvoices    int64           `json:"total_invoices"`
	DraftInvoices    int64           `json:"draft_invoices"`
	PaidInvoices     int64           `json:"paid_invoices"`
	OverdueInvoices  int64           `json:"overdue_invoices"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	YearlyRevenue    decimal.Decimal `json:"yearly_revenue"`
}

type SendResponse struct {
	InvoiceNumber string `json:"invoice_number"`
	SentTo        string `json:"sent_to"`
	ArchivePath   string `json:"archive_path"`
	Status        Status `json:"status"`
}

// NewInvoiceResponse maps inv; today drives the derived overdue flag.
func NewInvoiceResponse(inv Invoice, today time.Time) InvoiceResponse {
	status := inv.DisplayStatus(today)
	resp := InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		ProjectID:          inv.ProjectID,
		ProjectName:        inv.ProjectName,
		ClientName:         inv.ClientName,
		ClientEmail:        inv.ClientEmail,
		ClientAddress:      inv.ClientAddress,
		ClientPhone:        inv.ClientPhone,
		IssueDate:          inv.IssueDate.Format(validator.DateLayout),
		DueDate:            inv.DueDate.Format(validator.DateLayout),
		Status:             status,
		StatusDisplayName:  status.DisplayName(),
		IsOverdue:          inv.IsOverdue(today),
		DaysOverdue:        inv.DaysOverdue(today),
		Subtotal:           inv.Subtotal,
		TaxRate:            inv.TaxRate,
		TaxAmount:          inv.TaxAmount,
		TotalAmount:        inv.TotalAmount,
		PaidAmount:         inv.PaidAmount,
		BalanceAmount:      inv.BalanceAmount,
		Notes:              inv.Notes,
		TermsAndConditions: inv.TermsAndConditions,
	}
	if inv.LastPaymentDate != nil {
		paid := inv.LastPaymentDate.Format(validator.DateLayout)
		resp.LastPaymentDate = &paid
	}
	if !inv.CreatedAt.IsZero() {
		created := inv.CreatedAt.Format(time.RFC3339)
		resp.CreatedAt = &created
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:                  item.ID,
			Description:         item.Description,
			ItemType:            item.ItemType,
			ItemTypeDisplayName: item.ItemType.DisplayName(),
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			Amount:              item.Amount,
			TimeLogRef:          item.TimeLogRef,
		})
	}
	return resp
}
