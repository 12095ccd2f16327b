package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/sequence"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/bizops-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/bizops-backend-go/internal/service/file"
	"github.com/google/uuid"
)

type PayslipServiceImpl struct {
	transactor   postgresql.Transactor
	payslipRepo  payroll.PayslipRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	calculator   attendance.PeriodCalculator
	sequences    sequence.Generator
	fileService  file.FileService
	emailService email.EmailService
	cfg          config.PayrollConfig
	now          func() time.Time
}

func NewPayslipService(
	transactor postgresql.Transactor,
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	calculator attendance.PeriodCalculator,
	sequences sequence.Generator,
	fileService file.FileService,
	emailService email.EmailService,
	cfg config.PayrollConfig,
) payroll.PayslipService {
	return &PayslipServiceImpl{
		transactor:   transactor,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		calculator:   calculator,
		sequences:    sequences,
		fileService:  fileService,
		emailService: emailService,
		cfg:          cfg,
		now:          time.Now,
	}
}

// ========== GENERATION ==========

// Generate implements payroll.PayslipService.
func (s *PayslipServiceImpl) Generate(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	return s.generate(ctx, actor.CompanyID, req)
}

// GenerateMine implements payroll.PayslipService.
func (s *PayslipServiceImpl) GenerateMine(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	req.EmployeeID = *actor.EmployeeID
	return s.generate(ctx, actor.CompanyID, req)
}

func (s *PayslipServiceImpl) generate(ctx context.Context, companyID string, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.compute(ctx, companyID, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		overlapping, err := s.payslipRepo.ExistsOverlapping(txCtx, companyID, payslip.EmployeeID, payslip.PayPeriodStart, payslip.PayPeriodEnd)
		if err != nil {
			return fmt.Errorf("failed to check overlapping payslips: %w", err)
		}
		if overlapping {
			return payroll.ErrPayslipPeriodOverlap
		}

		floor, err := s.payslipRepo.MaxSequence(txCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to read payslip sequence: %w", err)
		}
		seq, err := s.sequences.Next(txCtx, payroll.SequenceKey(companyID), floor)
		if err != nil {
			return err
		}

		payslip.ID = uuid.Must(uuid.NewV7()).String()
		payslip.PayslipNumber = payroll.FormatNumber(payslip.PayPeriodStart, seq)
		payslip.Status = payroll.StatusGenerated

		created, err := s.payslipRepo.Create(txCtx, payslip)
		if err != nil {
			return err
		}
		payslip = created
		return nil
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slog.Info("Payslip generated", "company_id", companyID, "employee_id", payslip.EmployeeID, "number", payslip.PayslipNumber)
	return payroll.NewPayslipResponse(payslip), nil
}

// Preview implements payroll.PayslipService.
func (s *PayslipServiceImpl) Preview(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	payslip, err := s.preview(ctx, actor, req)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(payslip), nil
}

// PreviewPDF implements payroll.PayslipService.
func (s *PayslipServiceImpl) PreviewPDF(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (pdf.Document, error) {
	payslip, err := s.preview(ctx, actor, req)
	if err != nil {
		return pdf.Document{}, err
	}
	return s.render(ctx, actor.CompanyID, payslip)
}

// preview computes without persisting. Employees may only preview themselves;
// a blank employee defaults to the caller.
func (s *PayslipServiceImpl) preview(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.Payslip, error) {
	if err := actor.Validate(); err != nil {
		return payroll.Payslip{}, err
	}
	if req.EmployeeID == "" && actor.IsEmployee() {
		req.EmployeeID = *actor.EmployeeID
	}
	if !actor.IsManager() && !actor.Owns(req.EmployeeID) {
		return payroll.Payslip{}, payroll.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return payroll.Payslip{}, err
	}

	payslip, err := s.compute(ctx, actor.CompanyID, req)
	if err != nil {
		return payroll.Payslip{}, err
	}
	payslip.PayslipNumber = payroll.PreviewNumber(s.now())
	payslip.Status = payroll.StatusDraft
	return payslip, nil
}

// compute resolves the employee, parses the optional amounts and derives the
// payslip from the attendance in [start, end].
func (s *PayslipServiceImpl) compute(ctx context.Context, companyID string, req payroll.GenerateRequest) (payroll.Payslip, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	parser := money.NewParser(s.cfg.OnParseError)
	payslip := payroll.Payslip{
		EmployeeID:         emp.ID,
		CompanyID:          companyID,
		PayPeriodStart:     req.StartDate,
		PayPeriodEnd:       req.EndDate,
		PayDate:            req.EndDate,
		MonthlySalary:      parser.Optional("monthly_salary", string(req.MonthlySalary)),
		Allowances:         parser.Optional("allowances", string(req.Allowances)),
		Bonuses:            parser.Optional("bonuses", string(req.Bonuses)),
		OtherDeductions:    parser.Optional("other_deductions", string(req.OtherDeductions)),
		OvertimeRate:       parser.Optional("overtime_rate", string(req.OvertimeRate)),
		TaxRate:            parser.Rate("tax_rate", string(req.TaxRate)),
		InsuranceDeduction: parser.Optional("insurance_deduction", string(req.InsuranceDeduction)),
		Notes:              req.Notes,
		EmployeeName:       &emp.FullName,
		EmployeeEmail:      emp.Email,
	}
	if err := parser.Err(); err != nil {
		return payroll.Payslip{}, err
	}
	if strings.TrimSpace(string(req.MonthlySalary)) == "" {
		payslip.MonthlySalary = emp.MonthlySalary()
	}
	if req.PayDateTime != nil {
		payslip.PayDate = *req.PayDateTime
	}

	period, err := s.calculator.ComputePeriod(ctx, companyID, emp.ID, req.StartDate, req.EndDate)
	if err != nil {
		return payroll.Payslip{}, err
	}
	payslip.DaysWorked = period.DaysWorked
	payslip.OvertimeHours = period.TotalOvertimeHours
	payslip.WorkingDays = payroll.WorkingDaysInPeriod(req.StartDate, req.EndDate)
	payslip.Recalculate()

	return payslip, nil
}

// ========== QUERIES ==========

// Get implements payroll.PayslipService.
func (s *PayslipServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (payroll.PayslipResponse, error) {
	payslip, err := s.readable(ctx, actor, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(payslip), nil
}

// ListMine implements payroll.PayslipService.
func (s *PayslipServiceImpl) ListMine(ctx context.Context, actor user.Actor, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return payroll.ListPayslipResponse{}, err
	}
	filter.EmployeeID = actor.EmployeeID
	return s.list(ctx, actor.CompanyID, filter)
}

// List implements payroll.PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context, actor user.Actor, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.ListPayslipResponse{}, err
	}
	return s.list(ctx, actor.CompanyID, filter)
}

func (s *PayslipServiceImpl) list(ctx context.Context, companyID string, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	payslips, total, err := s.payslipRepo.List(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, fmt.Errorf("failed to list payslips: %w", err)
	}

	data := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		data = append(data, payroll.NewPayslipResponse(p))
	}
	return payroll.ListPayslipResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Statistics implements payroll.PayslipService.
func (s *PayslipServiceImpl) Statistics(ctx context.Context, actor user.Actor, req payroll.StatisticsRequest) (payroll.StatisticsResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.StatisticsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.StatisticsResponse{}, err
	}

	stats, err := s.payslipRepo.Statistics(ctx, actor.CompanyID, req.FromDate, req.ToDate)
	if err != nil {
		return payroll.StatisticsResponse{}, fmt.Errorf("failed to compute payslip statistics: %w", err)
	}
	return payroll.StatisticsResponse{
		From:         req.From,
		To:           req.To,
		TotalCount:   stats.TotalCount,
		PaidCount:    stats.PaidCount,
		TotalPaidNet: stats.TotalPaidNet,
	}, nil
}

// ========== MUTATIONS ==========

// Update implements payroll.PayslipService.
func (s *PayslipServiceImpl) Update(ctx context.Context, actor user.Actor, req payroll.UpdatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if payslip.Status == payroll.StatusPaid {
		return payroll.PayslipResponse{}, payroll.ErrPayslipAlreadyPaid
	}

	parser := money.NewParser(s.cfg.OnParseError)
	if v := parser.OptionalPtr("allowances", req.Allowances.Ptr()); v != nil {
		payslip.Allowances = *v
	}
	if v := parser.OptionalPtr("bonuses", req.Bonuses.Ptr()); v != nil {
		payslip.Bonuses = *v
	}
	if v := parser.OptionalPtr("other_deductions", req.OtherDeductions.Ptr()); v != nil {
		payslip.OtherDeductions = *v
	}
	if err := parser.Err(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	if req.Notes != nil {
		payslip.Notes = req.Notes
	}
	if req.Status != nil {
		payslip.Status = payroll.PayslipStatus(strings.ToUpper(*req.Status))
	}
	payslip.Recalculate()

	if err := s.payslipRepo.Update(ctx, payslip); err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to update payslip: %w", err)
	}
	return payroll.NewPayslipResponse(payslip), nil
}

// UpdateStatus implements payroll.PayslipService. Any status may move to any other.
func (s *PayslipServiceImpl) UpdateStatus(ctx context.Context, actor user.Actor, id string, req payroll.UpdateStatusRequest) (payroll.PayslipResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.PayslipResponse{}, err
	}
	status, err := req.Parse()
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if err := s.payslipRepo.UpdateStatus(ctx, id, actor.CompanyID, status); err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to update payslip status: %w", err)
	}

	slog.Info("Payslip status changed", "number", payslip.PayslipNumber, "from", payslip.Status, "to", status)
	payslip.Status = status
	return payroll.NewPayslipResponse(payslip), nil
}

// Delete implements payroll.PayslipService.
func (s *PayslipServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if err := actor.RequireManager(); err != nil {
		return err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return err
	}
	if payslip.Status == payroll.StatusPaid {
		return payroll.ErrPayslipAlreadyPaid
	}
	return s.payslipRepo.Delete(ctx, id, actor.CompanyID)
}

// ========== DOCUMENTS ==========

// RenderPDF implements payroll.PayslipService.
func (s *PayslipServiceImpl) RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error) {
	payslip, err := s.readable(ctx, actor, id)
	if err != nil {
		return pdf.Document{}, err
	}
	return s.render(ctx, actor.CompanyID, payslip)
}

// Send implements payroll.PayslipService.
func (s *PayslipServiceImpl) Send(ctx context.Context, actor user.Actor, id string) (payroll.SendResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return payroll.SendResponse{}, err
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.SendResponse{}, err
	}
	if payslip.EmployeeEmail == nil || strings.TrimSpace(*payslip.EmployeeEmail) == "" {
		return payroll.SendResponse{}, payroll.ErrRecipientMissing
	}

	comp, err := s.companyRepo.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return payroll.SendResponse{}, err
	}
	doc, err := s.renderFor(ctx, comp, payslip)
	if err != nil {
		return payroll.SendResponse{}, err
	}

	archivePath, err := s.fileService.ArchiveDocument(ctx, file.FolderPayslips, actor.CompanyID, doc)
	if err != nil {
		return payroll.SendResponse{}, fmt.Errorf("failed to archive payslip: %w", err)
	}

	data := email.PayslipEmailData{
		EmployeeName:  deref(payslip.EmployeeName),
		CompanyName:   comp.Name,
		PayslipNumber: payslip.PayslipNumber,
		PeriodStart:   payslip.PayPeriodStart.Format(validator.DateLayout),
		PeriodEnd:     payslip.PayPeriodEnd.Format(validator.DateLayout),
		NetSalary:     money.Format(payslip.NetSalary),
	}
	attachment := email.Attachment{Filename: doc.Filename, ContentType: pdf.ContentType, Content: doc.Content}
	if err := s.emailService.SendPayslip(*payslip.EmployeeEmail, data, attachment); err != nil {
		return payroll.SendResponse{}, fmt.Errorf("failed to email payslip: %w", err)
	}

	slog.Info("Payslip sent", "number", payslip.PayslipNumber, "to", *payslip.EmployeeEmail)
	return payroll.SendResponse{
		PayslipNumber: payslip.PayslipNumber,
		SentTo:        *payslip.EmployeeEmail,
		ArchivePath:   archivePath,
	}, nil
}

// readable loads a payslip the actor may see: managers see the company's,
// employees only their own.
func (s *PayslipServiceImpl) readable(ctx context.Context, actor user.Actor, id string) (payroll.Payslip, error) {
	if err := actor.Validate(); err != nil {
		return payroll.Payslip{}, err
	}
	if !validator.IsValidUUID(id) {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if !actor.IsManager() && !actor.Owns(payslip.EmployeeID) {
		return payroll.Payslip{}, payroll.ErrUnauthorized
	}
	return payslip, nil
}

func (s *PayslipServiceImpl) render(ctx context.Context, companyID string, payslip payroll.Payslip) (pdf.Document, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return pdf.Document{}, err
	}
	return s.renderFor(ctx, comp, payslip)
}

func (s *PayslipServiceImpl) renderFor(ctx context.Context, comp company.Company, payslip payroll.Payslip) (pdf.Document, error) {
	var logo []byte
	if comp.LogoPath != nil {
		data, err := s.fileService.LoadLogo(ctx, *comp.LogoPath)
		if err != nil {
			slog.Warn("Company logo unavailable, rendering without it", "company_id", comp.ID, "error", err)
		}
		logo = data
	}

	content, err := pdf.Render(payslipLayout(comp, payslip, logo))
	if err != nil {
		return pdf.Document{}, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return pdf.Document{Filename: payslip.PayslipNumber + ".pdf", Content: content}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
