package mocks

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/mock"
)

type PayslipRepository struct {
	mock.Mock
}

func (m *PayslipRepository) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	args := m.Called(ctx, payslip)
	if fn, ok := args.Get(0).(func(context.Context, payroll.Payslip) payroll.Payslip); ok {
		return fn(ctx, payslip), args.Error(1)
	}
	return args.Get(0).(payroll.Payslip), args.Error(1)
}

func (m *PayslipRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	args := m.Called(ctx, id, companyID)
	return args.Get(0).(payroll.Payslip), args.Error(1)
}

func (m *PayslipRepository) List(ctx context.Context, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]payroll.Payslip), args.Get(1).(int64), args.Error(2)
}

func (m *PayslipRepository) Update(ctx context.Context, payslip payroll.Payslip) error {
	args := m.Called(ctx, payslip)
	return args.Error(0)
}

func (m *PayslipRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payroll.PayslipStatus) error {
	args := m.Called(ctx, id, companyID, status)
	return args.Error(0)
}

func (m *PayslipRepository) Delete(ctx context.Context, id string, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

func (m *PayslipRepository) ExistsOverlapping(ctx context.Context, companyID, employeeID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, companyID, employeeID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *PayslipRepository) MaxSequence(ctx context.Context, companyID string) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PayslipRepository) Statistics(ctx context.Context, companyID string, from, to time.Time) (payroll.Statistics, error) {
	args := m.Called(ctx, companyID, from, to)
	return args.Get(0).(payroll.Statistics), args.Error(1)
}
