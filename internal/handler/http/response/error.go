package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrActorRequired), errors.Is(err, user.ErrCompanyIDRequired):
		Unauthorized(w, err.Error())

	// Access errors
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrEmployeeLinkRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, payroll.ErrUnauthorized),
		errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, payroll.ErrPayslipNotFound),
		errors.Is(err, invoice.ErrInvoiceNotFound),
		errors.Is(err, invoice.ErrInvoiceItemNotFound):
		NotFound(w, err.Error())

	// Conflicts with the current state
	case errors.Is(err, payroll.ErrPayslipPeriodOverlap),
		errors.Is(err, payroll.ErrPayslipAlreadyPaid),
		errors.Is(err, invoice.ErrInvoiceNumberExists),
		errors.Is(err, invoice.ErrInvoiceAlreadyPaid),
		errors.Is(err, invoice.ErrInvoiceNotDraft),
		errors.Is(err, invoice.ErrInvoiceClosed),
		errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())

	// Invalid arguments
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidStatus),
		errors.Is(err, payroll.ErrRecipientMissing),
		errors.Is(err, invoice.ErrPaymentAmountMismatch),
		errors.Is(err, invoice.ErrPaidViaPaymentOnly),
		errors.Is(err, invoice.ErrInvalidStatus),
		errors.Is(err, invoice.ErrInvalidDueDate),
		errors.Is(err, invoice.ErrRecipientMissing),
		errors.Is(err, attendance.ErrOutsideClockInWindow),
		errors.Is(err, attendance.ErrOutsideClockOutWindow),
		errors.Is(err, attendance.ErrWeekendNotAllowed),
		errors.Is(err, attendance.ErrEntryTooSoon),
		errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
