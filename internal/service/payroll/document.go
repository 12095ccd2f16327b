package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
)

func payslipLayout(comp company.Company, p payroll.Payslip, logo []byte) pdf.Layout {
	issuer := []string{comp.Name}
	for _, line := range []*string{comp.Address, comp.Phone, comp.Email} {
		if line != nil && *line != "" {
			issuer = append(issuer, *line)
		}
	}

	employeeLines := []string{deref(p.EmployeeName)}
	if p.EmployeeEmail != nil {
		employeeLines = append(employeeLines, *p.EmployeeEmail)
	}

	earnings := [][]string{
		{"Basic salary", fmt.Sprintf("%d of %d days x %s", p.DaysWorked, p.WorkingDays, money.Format(p.DailySalary)), money.Format(p.BasicSalary)},
		{"Overtime", fmt.Sprintf("%s h x %s", p.OvertimeHours.StringFixed(2), money.Format(p.OvertimeRate)), money.Format(p.OvertimeAmount)},
		{"Allowances", "", money.Format(p.Allowances)},
		{"Bonuses", "", money.Format(p.Bonuses)},
		{"Tax", p.TaxRate.String() + "%", "-" + money.Format(p.TaxDeduction)},
		{"Insurance", "", "-" + money.Format(p.InsuranceDeduction)},
		{"Other deductions", "", "-" + money.Format(p.OtherDeductions)},
	}

	var footer []string
	if p.Notes != nil && *p.Notes != "" {
		footer = append(footer, "Notes: "+*p.Notes)
	}
	footer = append(footer, "This payslip was generated electronically and is valid without a signature.")

	return pdf.Layout{
		Logo:     logo,
		Title:    "PAYSLIP",
		Subtitle: p.PayslipNumber,
		Meta: []pdf.SummaryRow{
			{Label: "Period", Value: p.PayPeriodStart.Format(validator.DateLayout) + " to " + p.PayPeriodEnd.Format(validator.DateLayout)},
			{Label: "Pay date", Value: p.PayDate.Format(validator.DateLayout)},
			{Label: "Status", Value: p.Status.DisplayName()},
		},
		Blocks: []pdf.Block{
			{Heading: "Employer", Lines: issuer},
			{Heading: "Employee", Lines: employeeLines},
		},
		Table: &pdf.Table{
			Columns: []pdf.Column{
				{Header: "Component", Width: 60, Align: pdf.AlignLeft},
				{Header: "Detail", Width: 75, Align: pdf.AlignLeft},
				{Header: "Amount", Width: 45, Align: pdf.AlignRight},
			},
			Rows: earnings,
		},
		Summary: []pdf.SummaryRow{
			{Label: "Gross salary", Value: money.Format(p.GrossSalary)},
			{Label: "Total deductions", Value: money.Format(p.TotalDeductions)},
			{Label: "Net salary", Value: money.Format(p.NetSalary), Bold: true},
		},
		Footer: footer,
	}
}
