package invoice

import (
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusViewed    Status = "VIEWED"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

var statusDisplayNames = map[Status]string{
	StatusDraft:     "Draft",
	StatusSent:      "Sent",
	StatusViewed:    "Viewed",
	StatusPaid:      "Paid",
	StatusOverdue:   "Overdue",
	StatusCancelled: "Cancelled",
}

// IsValid reports a status that may be stored. OVERDUE is derived from the
// due date and never stored.
func (s Status) IsValid() bool {
	_, ok := statusDisplayNames[s]
	return ok && s != StatusOverdue
}

func (s Status) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// IsClosed reports statuses whose items and amounts are frozen.
func (s Status) IsClosed() bool {
	return s == StatusPaid || s == StatusCancelled
}

// ItemType enum
type ItemType string

const (
	ItemFixedPrice ItemType = "FIXED_PRICE"
	ItemTimeBased  ItemType = "TIME_BASED"
	ItemExpense    ItemType = "EXPENSE"
	ItemDiscount   ItemType = "DISCOUNT"
)

var itemTypeDisplayNames = map[ItemType]string{
	ItemFixedPrice: "Fixed Price",
	ItemTimeBased:  "Time Based",
	ItemExpense:    "Expense",
	ItemDiscount:   "Discount",
}

func (t ItemType) IsValid() bool {
	_, ok := itemTypeDisplayNames[t]
	return ok
}

func (t ItemType) DisplayName() string {
	if name, ok := itemTypeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Item is a line owned by value by its Invoice. Position keeps the order.
type Item struct {
	ID          string
	Description string
	ItemType    ItemType
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	TimeLogRef  *string
	Position    int
}

// Calculate sets Amount to quantity × unit price.
func (i *Item) Calculate() {
	i.Amount = money.Round2(i.Quantity.Mul(i.UnitPrice))
}

// Invoice is the aggregate root. Subtotal, TaxAmount, TotalAmount and
// BalanceAmount are derived and only written by Recalculate.
type Invoice struct {
	ID                 string
	CompanyID          string
	ProjectID          *string
	CreatedBy          string
	InvoiceNumber      string
	ClientName         string
	ClientEmail        *string
	ClientAddress      *string
	ClientPhone        *string
	IssueDate          time.Time
	DueDate            time.Time
	Status             Status
	Subtotal           decimal.Decimal
	TaxRate            decimal.Decimal
	TaxAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	PaidAmount         decimal.Decimal
	BalanceAmount      decimal.Decimal
	LastPaymentDate    *time.Time
	Notes              *string
	TermsAndConditions *string
	Items              []Item
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	ProjectName *string
}

// Recalculate derives the four amount fields from the items, tax rate and paid amount.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = money.Percent(subtotal, inv.TaxRate)
	inv.TotalAmount = subtotal.Add(inv.TaxAmount)
	inv.BalanceAmount = inv.TotalAmount.Sub(inv.PaidAmount)
}

// AddItem appends item after the existing lines.
func (inv *Invoice) AddItem(item Item) error {
	if inv.Status.IsClosed() {
		return ErrInvoiceClosed
	}
	item.Calculate()
	item.Position = len(inv.Items)
	inv.Items = append(inv.Items, item)
	inv.Recalculate()
	return nil
}

// RemoveItem drops the item with itemID and renumbers the remaining positions.
func (inv *Invoice) RemoveItem(itemID string) error {
	if inv.Status.IsClosed() {
		return ErrInvoiceClosed
	}
	idx := slices.IndexFunc(inv.Items, func(i Item) bool { return i.ID == itemID })
	if idx < 0 {
		return ErrInvoiceItemNotFound
	}
	inv.Items = slices.Delete(inv.Items, idx, idx+1)
	for i := range inv.Items {
		inv.Items[i].Position = i
	}
	inv.Recalculate()
	return nil
}

// ReplaceItems swaps the whole item list.
func (inv *Invoice) ReplaceItems(items []Item) error {
	if inv.Status.IsClosed() {
		return ErrInvoiceClosed
	}
	inv.Items = make([]Item, 0, len(items))
	for i, item := range items {
		item.Calculate()
		item.Position = i
		inv.Items = append(inv.Items, item)
	}
	inv.Recalculate()
	return nil
}

// RecordPayment settles the invoice in full.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, date time.Time) error {
	if inv.Status == StatusPaid {
		return ErrInvoiceAlreadyPaid
	}
	if !amount.Equal(inv.TotalAmount) {
		return ErrPaymentAmountMismatch
	}
	inv.PaidAmount = amount
	inv.LastPaymentDate = &date
	inv.Status = StatusPaid
	inv.Recalculate()
	return nil
}

// IsOverdue reports an open invoice whose due date is before today.
func (inv Invoice) IsOverdue(today time.Time) bool {
	return !inv.Status.IsClosed() && dateOnly(inv.DueDate).Before(dateOnly(today))
}

// DaysOverdue is the number of whole days past the due date, or zero.
func (inv Invoice) DaysOverdue(today time.Time) int {
	if !inv.IsOverdue(today) {
		return 0
	}
	return int(dateOnly(today).Sub(dateOnly(inv.DueDate)).Hours() / 24)
}

// DisplayStatus is the stored status, or OVERDUE when the due date has passed.
func (inv Invoice) DisplayStatus(today time.Time) Status {
	if inv.IsOverdue(today) {
		return StatusOverdue
	}
	return inv.Status
}

// Statistics summarizes a company's invoices.
type Statistics struct {
	TotalCount       int64
	DraftCount       int64
	PaidCount        int64
	OverdueCount     int64
	TotalOutstanding decimal.Decimal
	YearlyRevenue    decimal.Decimal
}

// NumberPrefix is {ORGCODE}-{year}.
func NumberPrefix(orgCode string, year int) string {
	return fmt.Sprintf("%s-%d", orgCode, year)
}

// FormatNumber builds {prefix}-{seq:03}.
func FormatNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// SequenceKey scopes the invoice counter to a company and number prefix.
func SequenceKey(companyID, prefix string) string {
	return "invoice:" + companyID + ":" + prefix
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
