package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/mocks"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/sequence"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	companyID  = "comp-1"
	employeeID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
	otherID    = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8c"
	payslipID  = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b01"
)

type PayslipServiceTestSuite struct {
	suite.Suite
	payslipRepo  *mocks.PayslipRepository
	employeeRepo *mocks.EmployeeRepository
	companyRepo  *mocks.CompanyRepository
	calculator   *mocks.PeriodCalculator
	fileService  *mocks.FileService
	emailService *mocks.EmailService
	transactor   *mocks.Transactor
	service      *PayslipServiceImpl
	ctx          context.Context
	manager      user.Actor
	employee     user.Actor
}

func (s *PayslipServiceTestSuite) SetupTest() {
	s.payslipRepo = new(mocks.PayslipRepository)
	s.employeeRepo = new(mocks.EmployeeRepository)
	s.companyRepo = new(mocks.CompanyRepository)
	s.calculator = new(mocks.PeriodCalculator)
	s.fileService = new(mocks.FileService)
	s.emailService = new(mocks.EmailService)
	s.transactor = &mocks.Transactor{}
	s.ctx = context.Background()

	s.service = NewPayslipService(
		s.transactor,
		s.payslipRepo,
		s.employeeRepo,
		s.companyRepo,
		s.calculator,
		sequence.NewMemoryGenerator(),
		s.fileService,
		s.emailService,
		config.PayrollConfig{OnParseError: config.ParseErrorZero, StandardHours: 8},
	).(*PayslipServiceImpl)

	empID := employeeID
	s.manager = user.Actor{UserID: "user-1", CompanyID: companyID, Role: user.RoleManager}
	s.employee = user.Actor{UserID: "user-2", CompanyID: companyID, EmployeeID: &empID, Role: user.RoleEmployee}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func (s *PayslipServiceTestSuite) expectEmployee(baseSalary *decimal.Decimal) {
	mail := "jane@example.com"
	s.employeeRepo.On("GetByID", mock.Anything, employeeID, companyID).Return(employee.Employee{
		ID:         employeeID,
		CompanyID:  companyID,
		FullName:   "Jane Doe",
		Email:      &mail,
		BaseSalary: baseSalary,
	}, nil)
}

func (s *PayslipServiceTestSuite) expectPeriod(daysWorked int, overtime string) {
	s.calculator.On("ComputePeriod", mock.Anything, companyID, employeeID, mock.Anything, mock.Anything).
		Return(attendance.PeriodResult{DaysWorked: daysWorked, TotalOvertimeHours: dec(overtime)}, nil)
}

func (s *PayslipServiceTestSuite) expectPersist(maxSeq int64) {
	s.payslipRepo.On("ExistsOverlapping", mock.Anything, companyID, employeeID, mock.Anything, mock.Anything).Return(false, nil).Once()
	s.payslipRepo.On("MaxSequence", mock.Anything, companyID).Return(maxSeq, nil).Once()
	s.payslipRepo.On("Create", mock.Anything, mock.AnythingOfType("payroll.Payslip")).
		Return(func(_ context.Context, p payroll.Payslip) payroll.Payslip { return p }, nil).Once()
}

func weekRequest() payroll.GenerateRequest {
	return payroll.GenerateRequest{
		EmployeeID:     employeeID,
		PayPeriodStart: "2025-03-10",
		PayPeriodEnd:   "2025-03-14",
		MonthlySalary:  "30000",
	}
}

// ========== GENERATION ==========

func (s *PayslipServiceTestSuite) TestGenerate_FullWeek() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.expectPersist(0)

	resp, err := s.service.Generate(s.ctx, s.manager, weekRequest())

	s.Require().NoError(err)
	s.Equal("PS2025030001", resp.PayslipNumber)
	s.Equal(payroll.StatusGenerated, resp.Status)
	s.Equal(5, resp.WorkingDays)
	s.Equal(5, resp.DaysWorked)
	s.Equal("6000.00", resp.DailySalary.StringFixed(2))
	s.True(resp.BasicSalary.Equal(dec("30000")))
	s.True(resp.GrossSalary.Equal(dec("30000")))
	s.True(resp.NetSalary.Equal(dec("30000")))
	s.Equal("2025-03-14", resp.PayDate)
	s.NotEmpty(resp.ID)
	s.Equal(1, s.transactor.Calls)
	s.payslipRepo.AssertExpectations(s.T())
}

func (s *PayslipServiceTestSuite) TestGenerate_AmountsHoldInvariants() {
	s.expectEmployee(nil)
	s.expectPeriod(4, "2.5")
	s.expectPersist(0)

	req := weekRequest()
	req.OvertimeRate = "100"
	req.Allowances = "500"
	req.Bonuses = "250.50"
	req.TaxRate = "10"
	req.InsuranceDeduction = "120"
	req.OtherDeductions = "30"
	payDate := "2025-03-20"
	req.PayDate = &payDate

	resp, err := s.service.Generate(s.ctx, s.manager, req)

	s.Require().NoError(err)
	s.True(resp.BasicSalary.Equal(dec("24000")))
	s.True(resp.OvertimeAmount.Equal(dec("250")))
	s.True(resp.GrossSalary.Equal(dec("25000.50")))
	s.True(resp.TaxDeduction.Equal(dec("2500.05")))
	s.True(resp.TotalDeductions.Equal(dec("2650.05")))
	s.True(resp.NetSalary.Equal(dec("22350.45")))
	s.True(resp.NetSalary.Equal(resp.GrossSalary.Sub(resp.TotalDeductions)))
	s.Equal("2025-03-20", resp.PayDate)
}

func (s *PayslipServiceTestSuite) TestGenerate_SequenceContinuesFromStoredNumbers() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.expectPersist(41)

	resp, err := s.service.Generate(s.ctx, s.manager, weekRequest())

	s.Require().NoError(err)
	s.Equal("PS2025030042", resp.PayslipNumber)
}

func (s *PayslipServiceTestSuite) TestGenerate_BlankMonthlyFallsBackToBaseSalary() {
	base := dec("21000")
	s.expectEmployee(&base)
	s.expectPeriod(5, "0")
	s.expectPersist(0)

	req := weekRequest()
	req.MonthlySalary = ""

	resp, err := s.service.Generate(s.ctx, s.manager, req)

	s.Require().NoError(err)
	s.True(resp.MonthlySalary.Equal(base))
	s.True(resp.DailySalary.Equal(dec("4200")))
}

func (s *PayslipServiceTestSuite) TestGenerate_OverlappingPeriod() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.payslipRepo.On("ExistsOverlapping", mock.Anything, companyID, employeeID, mock.Anything, mock.Anything).Return(true, nil)

	_, err := s.service.Generate(s.ctx, s.manager, weekRequest())

	s.ErrorIs(err, payroll.ErrPayslipPeriodOverlap)
	s.payslipRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *PayslipServiceTestSuite) TestGenerate_EmployeeNotFound() {
	s.employeeRepo.On("GetByID", mock.Anything, employeeID, companyID).Return(employee.Employee{}, employee.ErrEmployeeNotFound)

	_, err := s.service.Generate(s.ctx, s.manager, weekRequest())

	s.ErrorIs(err, employee.ErrEmployeeNotFound)
	s.Equal(0, s.transactor.Calls)
}

func (s *PayslipServiceTestSuite) TestGenerate_InvertedPeriod() {
	req := weekRequest()
	req.PayPeriodStart, req.PayPeriodEnd = "2025-03-14", "2025-03-10"

	_, err := s.service.Generate(s.ctx, s.manager, req)

	s.ErrorIs(err, payroll.ErrInvalidPeriod)
}

func (s *PayslipServiceTestSuite) TestGenerate_RequiresManager() {
	_, err := s.service.Generate(s.ctx, s.employee, weekRequest())
	s.ErrorIs(err, user.ErrManagerAccessRequired)
}

func (s *PayslipServiceTestSuite) TestGenerate_MalformedAmountUnderZeroPolicy() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.expectPersist(0)

	req := weekRequest()
	req.Bonuses = "lots"

	resp, err := s.service.Generate(s.ctx, s.manager, req)

	s.Require().NoError(err)
	s.True(resp.Bonuses.IsZero())
}

func (s *PayslipServiceTestSuite) TestGenerate_MalformedAmountUnderRejectPolicy() {
	s.service.cfg.OnParseError = config.ParseErrorReject
	s.expectEmployee(nil)

	req := weekRequest()
	req.Bonuses = "lots"

	_, err := s.service.Generate(s.ctx, s.manager, req)

	var verrs validator.ValidationErrors
	s.Require().ErrorAs(err, &verrs)
	s.Contains(verrs.ToMap(), "bonuses")
	s.Equal(0, s.transactor.Calls)
}

func (s *PayslipServiceTestSuite) TestGenerate_TaxRateOutOfRange() {
	for _, rate := range []string{"12.345", "1000"} {
		s.SetupTest()
		s.expectEmployee(nil)

		req := weekRequest()
		req.TaxRate = money.Input(rate)

		_, err := s.service.Generate(s.ctx, s.manager, req)

		var verrs validator.ValidationErrors
		s.Require().ErrorAs(err, &verrs, rate)
		s.Contains(verrs.ToMap(), "tax_rate", rate)
		s.Equal(0, s.transactor.Calls)
	}
}

func (s *PayslipServiceTestSuite) TestGenerateMine_UsesOwnEmployee() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.expectPersist(0)

	req := weekRequest()
	req.EmployeeID = otherID

	resp, err := s.service.GenerateMine(s.ctx, s.employee, req)

	s.Require().NoError(err)
	s.Equal(employeeID, resp.EmployeeID)
}

// ========== PREVIEW ==========

func (s *PayslipServiceTestSuite) TestPreview_DoesNotPersist() {
	now := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return now }
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")

	resp, err := s.service.Preview(s.ctx, s.manager, weekRequest())

	s.Require().NoError(err)
	s.Equal(payroll.PreviewNumber(now), resp.PayslipNumber)
	s.Equal("PSL-1742025600000", resp.PayslipNumber)
	s.True(resp.NetSalary.Equal(dec("30000")))
	s.Equal(0, s.transactor.Calls)
	s.payslipRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *PayslipServiceTestSuite) TestPreview_EmployeeCannotPreviewOthers() {
	req := weekRequest()
	req.EmployeeID = otherID

	_, err := s.service.Preview(s.ctx, s.employee, req)

	s.ErrorIs(err, payroll.ErrUnauthorized)
}

func (s *PayslipServiceTestSuite) TestPreviewPDF_RendersDocument() {
	s.expectEmployee(nil)
	s.expectPeriod(5, "0")
	s.companyRepo.On("GetByID", mock.Anything, companyID).Return(company.Company{ID: companyID, Name: "Acme"}, nil)

	req := weekRequest()
	req.EmployeeID = ""

	doc, err := s.service.PreviewPDF(s.ctx, s.employee, req)

	s.Require().NoError(err)
	s.Contains(doc.Filename, "PSL-")
	s.Equal("%PDF", string(doc.Content[:4]))
}

// ========== QUERIES AND MUTATIONS ==========

func storedPayslip(status payroll.PayslipStatus) payroll.Payslip {
	mail := "jane@example.com"
	name := "Jane Doe"
	p := payroll.Payslip{
		ID:             payslipID,
		PayslipNumber:  "PS2025030001",
		EmployeeID:     employeeID,
		CompanyID:      companyID,
		PayPeriodStart: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PayDate:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		MonthlySalary:  dec("30000"),
		WorkingDays:    5,
		DaysWorked:     5,
		Status:         status,
		EmployeeName:   &name,
		EmployeeEmail:  &mail,
	}
	p.Recalculate()
	return p
}

func (s *PayslipServiceTestSuite) TestGet_EmployeeCannotReadOthers() {
	other := storedPayslip(payroll.StatusGenerated)
	other.EmployeeID = otherID
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(other, nil)

	_, err := s.service.Get(s.ctx, s.employee, payslipID)

	s.ErrorIs(err, payroll.ErrUnauthorized)
}

func (s *PayslipServiceTestSuite) TestGet_NotFound() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(payroll.Payslip{}, payroll.ErrPayslipNotFound)

	_, err := s.service.Get(s.ctx, s.manager, payslipID)

	s.ErrorIs(err, payroll.ErrPayslipNotFound)
}

func (s *PayslipServiceTestSuite) TestListMine_ScopesToOwnEmployee() {
	s.payslipRepo.On("List", mock.Anything, companyID, mock.MatchedBy(func(f payroll.PayslipFilter) bool {
		return f.EmployeeID != nil && *f.EmployeeID == employeeID && f.Page == 1 && f.Limit == 20
	})).Return([]payroll.Payslip{storedPayslip(payroll.StatusPaid)}, int64(1), nil)

	resp, err := s.service.ListMine(s.ctx, s.employee, payroll.PayslipFilter{})

	s.Require().NoError(err)
	s.Len(resp.Data, 1)
	s.Equal(int64(1), resp.TotalCount)
	s.Equal("Paid", resp.Data[0].StatusDisplayName)
}

func (s *PayslipServiceTestSuite) TestUpdate_RecalculatesAmounts() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusGenerated), nil)
	s.payslipRepo.On("Update", mock.Anything, mock.MatchedBy(func(p payroll.Payslip) bool {
		return p.GrossSalary.Equal(dec("31000")) && p.NetSalary.Equal(dec("30900"))
	})).Return(nil)

	allowances := money.Input("1000")
	deductions := money.Input("100")
	resp, err := s.service.Update(s.ctx, s.manager, payroll.UpdatePayslipRequest{
		ID:              payslipID,
		Allowances:      &allowances,
		OtherDeductions: &deductions,
	})

	s.Require().NoError(err)
	s.True(resp.NetSalary.Equal(dec("30900")))
	s.payslipRepo.AssertExpectations(s.T())
}

func (s *PayslipServiceTestSuite) TestUpdate_PaidIsConflict() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusPaid), nil)

	notes := "late bonus"
	_, err := s.service.Update(s.ctx, s.manager, payroll.UpdatePayslipRequest{ID: payslipID, Notes: &notes})

	s.ErrorIs(err, payroll.ErrPayslipAlreadyPaid)
	s.payslipRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *PayslipServiceTestSuite) TestUpdateStatus_AnyTransitionAllowed() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusPaid), nil)
	s.payslipRepo.On("UpdateStatus", mock.Anything, payslipID, companyID, payroll.StatusDraft).Return(nil)

	resp, err := s.service.UpdateStatus(s.ctx, s.manager, payslipID, payroll.UpdateStatusRequest{Status: "draft"})

	s.Require().NoError(err)
	s.Equal(payroll.StatusDraft, resp.Status)
}

func (s *PayslipServiceTestSuite) TestUpdateStatus_Unknown() {
	_, err := s.service.UpdateStatus(s.ctx, s.manager, payslipID, payroll.UpdateStatusRequest{Status: "ARCHIVED"})
	s.ErrorIs(err, payroll.ErrInvalidStatus)
}

func (s *PayslipServiceTestSuite) TestDelete() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusGenerated), nil)
	s.payslipRepo.On("Delete", mock.Anything, payslipID, companyID).Return(nil)

	s.NoError(s.service.Delete(s.ctx, s.manager, payslipID))
}

func (s *PayslipServiceTestSuite) TestDelete_PaidIsConflict() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusPaid), nil)

	err := s.service.Delete(s.ctx, s.manager, payslipID)

	s.ErrorIs(err, payroll.ErrPayslipAlreadyPaid)
	s.payslipRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PayslipServiceTestSuite) TestStatistics() {
	s.payslipRepo.On("Statistics", mock.Anything, companyID, mock.Anything, mock.Anything).
		Return(payroll.Statistics{TotalCount: 4, PaidCount: 2, TotalPaidNet: dec("61000")}, nil)

	resp, err := s.service.Statistics(s.ctx, s.manager, payroll.StatisticsRequest{From: "2025-01-01", To: "2025-03-31"})

	s.Require().NoError(err)
	s.Equal(int64(4), resp.TotalCount)
	s.Equal(int64(2), resp.PaidCount)
	s.True(resp.TotalPaidNet.Equal(dec("61000")))
}

// ========== DOCUMENTS ==========

func (s *PayslipServiceTestSuite) TestSend_ArchivesAndEmails() {
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(storedPayslip(payroll.StatusGenerated), nil)
	s.companyRepo.On("GetByID", mock.Anything, companyID).Return(company.Company{ID: companyID, Name: "Acme"}, nil)
	s.fileService.On("ArchiveDocument", mock.Anything, "payslips", companyID, mock.MatchedBy(func(d pdf.Document) bool {
		return d.Filename == "PS2025030001.pdf" && len(d.Content) > 0
	})).Return("payslips/comp-1/PS2025030001.pdf", nil)
	s.emailService.On("SendPayslip", "jane@example.com", mock.MatchedBy(func(d email.PayslipEmailData) bool {
		return d.PayslipNumber == "PS2025030001" && d.NetSalary == "30,000.00" && d.CompanyName == "Acme"
	}), mock.AnythingOfType("email.Attachment")).Return(nil)

	resp, err := s.service.Send(s.ctx, s.manager, payslipID)

	s.Require().NoError(err)
	s.Equal("payslips/comp-1/PS2025030001.pdf", resp.ArchivePath)
	s.Equal("jane@example.com", resp.SentTo)
	s.fileService.AssertExpectations(s.T())
	s.emailService.AssertExpectations(s.T())
}

func (s *PayslipServiceTestSuite) TestSend_MissingRecipient() {
	p := storedPayslip(payroll.StatusGenerated)
	p.EmployeeEmail = nil
	s.payslipRepo.On("GetByID", mock.Anything, payslipID, companyID).Return(p, nil)

	_, err := s.service.Send(s.ctx, s.manager, payslipID)

	s.ErrorIs(err, payroll.ErrRecipientMissing)
}

func TestPayslipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayslipServiceTestSuite))
}
