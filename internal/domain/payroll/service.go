package payroll

import (
	"context"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
)

// PayslipService derives payslips from attendance and manages their lifecycle.
type PayslipService interface {
	// Generate persists a payslip for req.EmployeeID (manager only).
	Generate(ctx context.Context, actor user.Actor, req GenerateRequest) (PayslipResponse, error)

	// GenerateMine persists a payslip for the actor's own employee record.
	GenerateMine(ctx context.Context, actor user.Actor, req GenerateRequest) (PayslipResponse, error)

	// Preview computes a payslip without persisting it or allocating a number.
	Preview(ctx context.Context, actor user.Actor, req GenerateRequest) (PayslipResponse, error)
	PreviewPDF(ctx context.Context, actor user.Actor, req GenerateRequest) (pdf.Document, error)

	Get(ctx context.Context, actor user.Actor, id string) (PayslipResponse, error)
	ListMine(ctx context.Context, actor user.Actor, filter PayslipFilter) (ListPayslipResponse, error)
	List(ctx context.Context, actor user.Actor, filter PayslipFilter) (ListPayslipResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdatePayslipRequest) (PayslipResponse, error)
	UpdateStatus(ctx context.Context, actor user.Actor, id string, req UpdateStatusRequest) (PayslipResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
	Statistics(ctx context.Context, actor user.Actor, req StatisticsRequest) (StatisticsResponse, error)

	RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error)

	// Send archives the PDF and emails it to the employee.
	Send(ctx context.Context, actor user.Actor, id string) (SendResponse, error)
}
