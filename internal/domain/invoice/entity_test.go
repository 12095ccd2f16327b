package invoice

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(id, qty, price string) Item {
	return Item{ID: id, Description: "work " + id, ItemType: ItemFixedPrice, Quantity: d(qty), UnitPrice: d(price)}
}

func assertInvariants(t *testing.T, inv Invoice) {
	t.Helper()
	sum := decimal.Zero
	for _, i := range inv.Items {
		sum = sum.Add(i.Amount)
	}
	assert.True(t, inv.Subtotal.Equal(sum), "subtotal %s != Σ items %s", inv.Subtotal, sum)
	assert.True(t, inv.TaxAmount.Equal(inv.Subtotal.Mul(inv.TaxRate).Div(decimal.NewFromInt(100)).Round(2)))
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)))
	assert.True(t, inv.BalanceAmount.Equal(inv.TotalAmount.Sub(inv.PaidAmount)))
}

func scenarioInvoice(t *testing.T) Invoice {
	inv := Invoice{Status: StatusDraft, TaxRate: d("10")}
	require.NoError(t, inv.AddItem(item("a", "2", "100")))
	require.NoError(t, inv.AddItem(item("b", "1", "50")))
	return inv
}

func TestInvoice_TwoItemsWithTax(t *testing.T) {
	inv := scenarioInvoice(t)

	assert.Equal(t, "250.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "25.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "275.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "275.00", inv.BalanceAmount.StringFixed(2))
	assert.Equal(t, []int{0, 1}, []int{inv.Items[0].Position, inv.Items[1].Position})
	assertInvariants(t, inv)
}

func TestInvoice_RecalculateIsIdempotent(t *testing.T) {
	inv := scenarioInvoice(t)
	before := inv
	inv.Recalculate()
	inv.Recalculate()

	assert.True(t, inv.Subtotal.Equal(before.Subtotal))
	assert.True(t, inv.TaxAmount.Equal(before.TaxAmount))
	assert.True(t, inv.TotalAmount.Equal(before.TotalAmount))
	assert.True(t, inv.BalanceAmount.Equal(before.BalanceAmount))
	assert.Equal(t, before.Items, inv.Items)
}

func TestInvoice_RemoveItem(t *testing.T) {
	inv := scenarioInvoice(t)

	require.NoError(t, inv.RemoveItem("a"))

	assert.Len(t, inv.Items, 1)
	assert.Equal(t, 0, inv.Items[0].Position)
	assert.Equal(t, "55.00", inv.TotalAmount.StringFixed(2))
	assertInvariants(t, inv)

	assert.ErrorIs(t, inv.RemoveItem("missing"), ErrInvoiceItemNotFound)
}

func TestInvoice_ItemsFrozenWhenClosed(t *testing.T) {
	for _, status := range []Status{StatusPaid, StatusCancelled} {
		inv := scenarioInvoice(t)
		inv.Status = status

		assert.ErrorIs(t, inv.AddItem(item("c", "1", "1")), ErrInvoiceClosed)
		assert.ErrorIs(t, inv.RemoveItem("a"), ErrInvoiceClosed)
		assert.ErrorIs(t, inv.ReplaceItems(nil), ErrInvoiceClosed)
		assert.Len(t, inv.Items, 2)
	}
}

func TestInvoice_ReplaceItems(t *testing.T) {
	inv := scenarioInvoice(t)

	require.NoError(t, inv.ReplaceItems([]Item{item("x", "3", "33.335")}))

	assert.Len(t, inv.Items, 1)
	assert.Equal(t, "100.01", inv.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "10.00", inv.TaxAmount.StringFixed(2))
	assertInvariants(t, inv)
}

func TestInvoice_DiscountLineReducesSubtotal(t *testing.T) {
	inv := scenarioInvoice(t)
	discount := item("disc", "1", "-50")
	discount.ItemType = ItemDiscount

	require.NoError(t, inv.AddItem(discount))

	assert.Equal(t, "200.00", inv.Subtotal.StringFixed(2))
	assertInvariants(t, inv)
}

func TestInvoice_PartialPaymentRejected(t *testing.T) {
	inv := scenarioInvoice(t)
	inv.Status = StatusSent

	err := inv.RecordPayment(d("200"), time.Now())

	assert.ErrorIs(t, err, ErrPaymentAmountMismatch)
	assert.Equal(t, StatusSent, inv.Status)
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Nil(t, inv.LastPaymentDate)
}

func TestInvoice_FullPayment(t *testing.T) {
	inv := scenarioInvoice(t)
	paidOn := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, inv.RecordPayment(d("275.00"), paidOn))

	assert.Equal(t, StatusPaid, inv.Status)
	assert.True(t, inv.BalanceAmount.IsZero())
	assert.Equal(t, paidOn, *inv.LastPaymentDate)
	assertInvariants(t, inv)

	assert.ErrorIs(t, inv.RecordPayment(d("275"), paidOn), ErrInvoiceAlreadyPaid)
}

func TestInvoice_Overdue(t *testing.T) {
	today := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	inv := Invoice{Status: StatusSent, DueDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}

	assert.True(t, inv.IsOverdue(today))
	assert.Equal(t, 9, inv.DaysOverdue(today))
	assert.Equal(t, StatusOverdue, inv.DisplayStatus(today))

	inv.DueDate = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.False(t, inv.IsOverdue(today))

	inv.DueDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	inv.Status = StatusPaid
	assert.False(t, inv.IsOverdue(today))
	assert.Equal(t, 0, inv.DaysOverdue(today))
}

func TestNumbering(t *testing.T) {
	prefix := NumberPrefix("ACME", 2025)
	assert.Equal(t, "ACME-2025", prefix)
	assert.Equal(t, "ACME-2025-007", FormatNumber(prefix, 7))
	assert.Equal(t, "ACME-2025-1234", FormatNumber(prefix, 1234))
	assert.Equal(t, "invoice:comp-1:ACME-2025", SequenceKey("comp-1", prefix))
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusViewed.IsValid())
	assert.False(t, StatusOverdue.IsValid())
	assert.Equal(t, "Overdue", StatusOverdue.DisplayName())
	assert.Equal(t, "Time Based", ItemTimeBased.DisplayName())
}

func TestItemRequest_Parse(t *testing.T) {
	var errs validator.ValidationErrors

	got := ItemRequest{Description: " Design ", UnitPrice: "100"}.Parse("items[0]", &errs)
	assert.Empty(t, errs)
	assert.Equal(t, "Design", got.Description)
	assert.Equal(t, ItemFixedPrice, got.ItemType)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(1)))

	ItemRequest{UnitPrice: "-5", Quantity: "0", ItemType: "bogus"}.Parse("items[1]", &errs)
	m := errs.ToMap()
	assert.Contains(t, m, "items[1].description")
	assert.Contains(t, m, "items[1].quantity")
	assert.Contains(t, m, "items[1].item_type")
	assert.Contains(t, m, "items[1].unit_price")
}

func TestUpdateStatusRequest_Parse(t *testing.T) {
	status, err := UpdateStatusRequest{Status: "sent"}.Parse()
	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)

	_, err = UpdateStatusRequest{Status: "PAID"}.Parse()
	assert.ErrorIs(t, err, ErrPaidViaPaymentOnly)

	_, err = UpdateStatusRequest{Status: "OVERDUE"}.Parse()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPaymentRequest_Validate(t *testing.T) {
	req := PaymentRequest{Amount: money.Input("275.00")}
	require.NoError(t, req.Validate())
	assert.True(t, req.AmountValue.Equal(d("275")))
	assert.Nil(t, req.Date)

	bad := PaymentRequest{Amount: "abc"}
	assert.Error(t, bad.Validate())
}

func TestCreateInvoiceRequest_TaxRateScale(t *testing.T) {
	req := CreateInvoiceRequest{DraftRequest: DraftRequest{
		ClientName: "Acme",
		TaxRate:    money.Input("12.345"),
		Items:      []ItemRequest{{Description: "design", UnitPrice: money.Input("1000")}},
	}}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "tax_rate")

	req.TaxRate = money.Input("12.35")
	require.NoError(t, req.Validate())

	inv := Invoice{Status: StatusDraft, TaxRate: req.TaxRateValue}
	require.NoError(t, inv.ReplaceItems(req.ParsedItems))
	assert.Equal(t, "123.5", inv.TaxAmount.String())
	assertInvariants(t, inv)
}

func TestCreateInvoiceRequest_TaxRateBounds(t *testing.T) {
	for _, rate := range []string{"-1", "100.01", "abc"} {
		req := CreateInvoiceRequest{DraftRequest: DraftRequest{ClientName: "Acme", TaxRate: money.Input(rate)}}
		var verrs validator.ValidationErrors
		require.ErrorAs(t, req.Validate(), &verrs, rate)
		assert.Contains(t, verrs.ToMap(), "tax_rate", rate)
	}
}
