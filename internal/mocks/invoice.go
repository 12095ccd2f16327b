package mocks

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/invoice"
	"github.com/stretchr/testify/mock"
)

type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	args := m.Called(ctx, inv)
	if fn, ok := args.Get(0).(func(context.Context, invoice.Invoice) invoice.Invoice); ok {
		return fn(ctx, inv), args.Error(1)
	}
	return args.Get(0).(invoice.Invoice), args.Error(1)
}

func (m *InvoiceRepository) GetByID(ctx context.Context, id string, companyID string) (invoice.Invoice, error) {
	args := m.Called(ctx, id, companyID)
	return args.Get(0).(invoice.Invoice), args.Error(1)
}

func (m *InvoiceRepository) List(ctx context.Context, companyID string, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]invoice.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *InvoiceRepository) ListOverdue(ctx context.Context, companyID string, today time.Time) ([]invoice.Invoice, error) {
	args := m.Called(ctx, companyID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.Invoice), args.Error(1)
}

func (m *InvoiceRepository) ListAllOverdue(ctx context.Context, today time.Time) ([]invoice.Invoice, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.Invoice), args.Error(1)
}

func (m *InvoiceRepository) Update(ctx context.Context, inv invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *InvoiceRepository) ReplaceItems(ctx context.Context, invoiceID string, items []invoice.Item) error {
	args := m.Called(ctx, invoiceID, items)
	return args.Error(0)
}

func (m *InvoiceRepository) Delete(ctx context.Context, id string, companyID string) error {
	args := m.Called(ctx, id, companyID)
	return args.Error(0)
}

func (m *InvoiceRepository) MaxSequence(ctx context.Context, companyID string, prefix string) (int64, error) {
	args := m.Called(ctx, companyID, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InvoiceRepository) Statistics(ctx context.Context, companyID string, today time.Time, year int) (invoice.Statistics, error) {
	args := m.Called(ctx, companyID, today, year)
	return args.Get(0).(invoice.Statistics), args.Error(1)
}
