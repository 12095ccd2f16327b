// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

type AttendanceRepository struct {
	mock.Mock
}

func (m *AttendanceRepository) Create(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	args := m.Called(ctx, entry)
	if fn, ok := args.Get(0).(func(context.Context, attendance.Entry) attendance.Entry); ok {
		return fn(ctx, entry), args.Error(1)
	}
	return args.Get(0).(attendance.Entry), args.Error(1)
}

func (m *AttendanceRepository) ListByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]attendance.Entry, error) {
	args := m.Called(ctx, companyID, employeeID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]attendance.Entry), args.Error(1)
}

func (m *AttendanceRepository) GetLatest(ctx context.Context, companyID, employeeID string) (*attendance.Entry, error) {
	args := m.Called(ctx, companyID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.Entry), args.Error(1)
}

type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(company.Company), args.Error(1)
}

func (m *CompanyRepository) UpdateLogo(ctx context.Context, id string, logoPath string) error {
	args := m.Called(ctx, id, logoPath)
	return args.Error(0)
}

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	args := m.Called(ctx, id, companyID)
	return args.Get(0).(employee.Employee), args.Error(1)
}

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) GetByID(ctx context.Context, id string, companyID string) (project.Project, error) {
	args := m.Called(ctx, id, companyID)
	return args.Get(0).(project.Project), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

// Transactor runs fn inline and counts calls.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
