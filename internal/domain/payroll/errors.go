package payroll

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrPayslipPeriodOverlap = errors.New("a payslip already exists for an overlapping period")
	ErrPayslipAlreadyPaid   = errors.New("payslip already paid, cannot modify")
	ErrInvalidPeriod        = errors.New("pay period start must not be after pay period end")
	ErrInvalidStatus        = errors.New("invalid payslip status")
	ErrUnauthorized         = errors.New("unauthorized to access this payslip")
	ErrRecipientMissing     = errors.New("employee has no email address")
)
