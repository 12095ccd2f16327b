package mocks

import (
	"context"
	"io"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/pdf"
	"github.com/stretchr/testify/mock"
)

type PeriodCalculator struct {
	mock.Mock
}

func (m *PeriodCalculator) ComputePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (attendance.PeriodResult, error) {
	args := m.Called(ctx, companyID, employeeID, start, end)
	return args.Get(0).(attendance.PeriodResult), args.Error(1)
}

type FileService struct {
	mock.Mock
}

func (m *FileService) ArchiveDocument(ctx context.Context, folder, companyID string, doc pdf.Document) (string, error) {
	args := m.Called(ctx, folder, companyID, doc)
	return args.String(0), args.Error(1)
}

func (m *FileService) UploadCompanyLogo(ctx context.Context, companyID string, file io.Reader, filename string) (string, error) {
	args := m.Called(ctx, companyID, file, filename)
	return args.String(0), args.Error(1)
}

func (m *FileService) LoadLogo(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *FileService) DeleteFile(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *FileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, path, expiry)
	return args.String(0), args.Error(1)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendPayslip(to string, data email.PayslipEmailData, attachment email.Attachment) error {
	args := m.Called(to, data, attachment)
	return args.Error(0)
}

func (m *EmailService) SendInvoice(to string, data email.InvoiceEmailData, attachment email.Attachment) error {
	args := m.Called(to, data, attachment)
	return args.Error(0)
}

func (m *EmailService) SendOverdueReminder(to string, data email.InvoiceEmailData) error {
	args := m.Called(to, data)
	return args.Error(0)
}
