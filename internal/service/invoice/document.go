package invoice

import (
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
)

func invoiceLayout(comp company.Company, inv invoice.Invoice, logo []byte, today time.Time) pdf.Layout {
	issuer := []string{comp.Name}
	billTo := []string{inv.ClientName}
	for _, line := range []*string{comp.Address, comp.Phone, comp.Email} {
		if line != nil && *line != "" {
			issuer = append(issuer, *line)
		}
	}
	for _, line := range []*string{inv.ClientAddress, inv.ClientPhone, inv.ClientEmail} {
		if line != nil && *line != "" {
			billTo = append(billTo, *line)
		}
	}

	meta := []pdf.SummaryRow{
		{Label: "Issue date", Value: inv.IssueDate.Format(validator.DateLayout)},
		{Label: "Due date", Value: inv.DueDate.Format(validator.DateLayout)},
		{Label: "Status", Value: inv.DisplayStatus(today).DisplayName()},
	}
	if inv.ProjectName != nil {
		meta = append(meta, pdf.SummaryRow{Label: "Project", Value: *inv.ProjectName})
	}

	rows := make([][]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []string{
			item.Description,
			item.ItemType.DisplayName(),
			item.Quantity.String(),
			money.Format(item.UnitPrice),
			money.Format(item.Amount),
		})
	}

	summary := []pdf.SummaryRow{
		{Label: "Subtotal", Value: money.Format(inv.Subtotal)},
		{Label: "Tax (" + inv.TaxRate.String() + "%)", Value: money.Format(inv.TaxAmount)},
		{Label: "Total", Value: money.Format(inv.TotalAmount), Bold: true},
	}
	if inv.PaidAmount.IsPositive() {
		summary = append(summary,
			pdf.SummaryRow{Label: "Paid", Value: money.Format(inv.PaidAmount)},
			pdf.SummaryRow{Label: "Balance due", Value: money.Format(inv.BalanceAmount), Bold: true},
		)
	}

	var footer []string
	if inv.Notes != nil && *inv.Notes != "" {
		footer = append(footer, "Notes: "+*inv.Notes)
	}
	if inv.TermsAndConditions != nil && *inv.TermsAndConditions != "" {
		footer = append(footer, "Terms: "+*inv.TermsAndConditions)
	}

	return pdf.Layout{
		Logo:     logo,
		Title:    "INVOICE",
		Subtitle: inv.InvoiceNumber,
		Meta:     meta,
		Blocks: []pdf.Block{
			{Heading: "From", Lines: issuer},
			{Heading: "Bill to", Lines: billTo},
		},
		Table: &pdf.Table{
			Columns: []pdf.Column{
				{Header: "Description", Width: 70, Align: pdf.AlignLeft},
				{Header: "Type", Width: 30, Align: pdf.AlignLeft},
				{Header: "Qty", Width: 20, Align: pdf.AlignRight},
				{Header: "Unit price", Width: 30, Align: pdf.AlignRight},
				{Header: "Amount", Width: 30, Align: pdf.AlignRight},
			},
			Rows: rows,
		},
		Summary: summary,
		Footer:  footer,
	}
}
