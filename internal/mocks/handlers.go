package mocks

import (
	"context"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/stretchr/testify/mock"
)

// ========== AUTH ==========

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	args := m.Called(ctx, req, session)
	return args.Get(0).(auth.TokenResponse), args.Error(1)
}

func (m *AuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auth.AccessTokenResponse), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// ========== COMPANY ==========

type CompanyService struct {
	mock.Mock
}

func (m *CompanyService) Get(ctx context.Context, actor user.Actor) (company.CompanyResponse, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(company.CompanyResponse), args.Error(1)
}

func (m *CompanyService) UploadLogo(ctx context.Context, actor user.Actor, req company.UploadLogoRequest) (company.UploadLogoResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(company.UploadLogoResponse), args.Error(1)
}

// ========== ATTENDANCE ==========

type AttendanceService struct {
	mock.Mock
}

func (m *AttendanceService) ClockIn(ctx context.Context, actor user.Actor, req attendance.ClockRequest) (attendance.EntryResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(attendance.EntryResponse), args.Error(1)
}

func (m *AttendanceService) ClockOut(ctx context.Context, actor user.Actor, req attendance.ClockRequest) (attendance.EntryResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(attendance.EntryResponse), args.Error(1)
}

func (m *AttendanceService) Status(ctx context.Context, actor user.Actor) (attendance.StatusResponse, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(attendance.StatusResponse), args.Error(1)
}

func (m *AttendanceService) ListMine(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) ([]attendance.EntryResponse, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.EntryResponse), args.Error(1)
}

func (m *AttendanceService) List(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) ([]attendance.EntryResponse, error) {
	args := m.Called(ctx, actor, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.EntryResponse), args.Error(1)
}

func (m *AttendanceService) WorkSummary(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) (attendance.SummaryResponse, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(attendance.SummaryResponse), args.Error(1)
}

// ========== PAYSLIPS ==========

type PayslipService struct {
	mock.Mock
}

func (m *PayslipService) Generate(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) GenerateMine(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) Preview(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) PreviewPDF(ctx context.Context, actor user.Actor, req payroll.GenerateRequest) (pdf.Document, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(pdf.Document), args.Error(1)
}

func (m *PayslipService) Get(ctx context.Context, actor user.Actor, id string) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) ListMine(ctx context.Context, actor user.Actor, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(payroll.ListPayslipResponse), args.Error(1)
}

func (m *PayslipService) List(ctx context.Context, actor user.Actor, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(payroll.ListPayslipResponse), args.Error(1)
}

func (m *PayslipService) Update(ctx context.Context, actor user.Actor, req payroll.UpdatePayslipRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) UpdateStatus(ctx context.Context, actor user.Actor, id string, req payroll.UpdateStatusRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, actor, id, req)
	return args.Get(0).(payroll.PayslipResponse), args.Error(1)
}

func (m *PayslipService) Delete(ctx context.Context, actor user.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *PayslipService) Statistics(ctx context.Context, actor user.Actor, req payroll.StatisticsRequest) (payroll.StatisticsResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(payroll.StatisticsResponse), args.Error(1)
}

func (m *PayslipService) RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(pdf.Document), args.Error(1)
}

func (m *PayslipService) Send(ctx context.Context, actor user.Actor, id string) (payroll.SendResponse, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(payroll.SendResponse), args.Error(1)
}

// ========== INVOICES ==========

type InvoiceService struct {
	mock.Mock
}

func (m *InvoiceService) Create(ctx context.Context, actor user.Actor, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) Get(ctx context.Context, actor user.Actor, id string) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) List(ctx context.Context, actor user.Actor, filter invoice.InvoiceFilter) (invoice.ListInvoiceResponse, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).(invoice.ListInvoiceResponse), args.Error(1)
}

func (m *InvoiceService) ListOverdue(ctx context.Context, actor user.Actor) ([]invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) Statistics(ctx context.Context, actor user.Actor) (invoice.StatisticsResponse, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(invoice.StatisticsResponse), args.Error(1)
}

func (m *InvoiceService) Update(ctx context.Context, actor user.Actor, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) UpdateStatus(ctx context.Context, actor user.Actor, id string, req invoice.UpdateStatusRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, id, req)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) AddItem(ctx context.Context, actor user.Actor, req invoice.AddItemRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) RemoveItem(ctx context.Context, actor user.Actor, invoiceID, itemID string) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, invoiceID, itemID)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) RecordPayment(ctx context.Context, actor user.Actor, id string, req invoice.PaymentRequest) (invoice.InvoiceResponse, error) {
	args := m.Called(ctx, actor, id, req)
	return args.Get(0).(invoice.InvoiceResponse), args.Error(1)
}

func (m *InvoiceService) Delete(ctx context.Context, actor user.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *InvoiceService) RenderPDF(ctx context.Context, actor user.Actor, id string) (pdf.Document, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(pdf.Document), args.Error(1)
}

func (m *InvoiceService) Send(ctx context.Context, actor user.Actor, id string) (invoice.SendResponse, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(invoice.SendResponse), args.Error(1)
}

func (m *InvoiceService) SendOverdueReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
