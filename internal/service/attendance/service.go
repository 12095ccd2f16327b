package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	company.CompanyRepository
	employee.EmployeeRepository
	calculator *Calculator
	cfg        config.AttendanceConfig
	defaultLoc *time.Location
	now        func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *Calculator,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		CompanyRepository:    companyRepo,
		EmployeeRepository:   employeeRepo,
		calculator:           calculator,
		cfg:                  cfg,
		defaultLoc:           loc,
		now:                  time.Now,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, actor user.Actor, req attendance.ClockRequest) (attendance.EntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return attendance.EntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}

	loc, err := s.location(ctx, actor.CompanyID)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	nowLocal := s.now().In(loc)

	latest, err := s.AttendanceRepository.GetLatest(ctx, actor.CompanyID, *actor.EmployeeID)
	if err != nil {
		return attendance.EntryResponse{}, fmt.Errorf("failed to get latest entry: %w", err)
	}
	if latest != nil && latest.EntryType == attendance.EntryTypeClockIn && sameDay(latest.Timestamp.In(loc), nowLocal) {
		return attendance.EntryResponse{}, attendance.ErrAlreadyClockedIn
	}

	if !s.cfg.AllowWeekendClock && isWeekend(nowLocal) {
		return attendance.EntryResponse{}, attendance.ErrWeekendNotAllowed
	}
	if nowLocal.Hour() < s.cfg.ClockInStartHour || nowLocal.Hour() >= s.cfg.ClockInEndHour {
		return attendance.EntryResponse{}, attendance.ErrOutsideClockInWindow
	}
	if latest != nil && nowLocal.Sub(latest.Timestamp) < s.cfg.MinEntryInterval {
		return attendance.EntryResponse{}, attendance.ErrEntryTooSoon
	}

	return s.record(ctx, actor, attendance.EntryTypeClockIn, nowLocal, req.Notes)
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, actor user.Actor, req attendance.ClockRequest) (attendance.EntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return attendance.EntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.EntryResponse{}, err
	}

	loc, err := s.location(ctx, actor.CompanyID)
	if err != nil {
		return attendance.EntryResponse{}, err
	}
	nowLocal := s.now().In(loc)

	latest, err := s.AttendanceRepository.GetLatest(ctx, actor.CompanyID, *actor.EmployeeID)
	if err != nil {
		return attendance.EntryResponse{}, fmt.Errorf("failed to get latest entry: %w", err)
	}
	if latest == nil || latest.EntryType != attendance.EntryTypeClockIn || !sameDay(latest.Timestamp.In(loc), nowLocal) {
		return attendance.EntryResponse{}, attendance.ErrNotClockedIn
	}

	if nowLocal.Hour() < s.cfg.ClockInStartHour || nowLocal.Hour() >= s.cfg.ClockOutEndHour {
		return attendance.EntryResponse{}, attendance.ErrOutsideClockOutWindow
	}
	if nowLocal.Sub(latest.Timestamp) < s.cfg.MinEntryInterval {
		return attendance.EntryResponse{}, attendance.ErrEntryTooSoon
	}

	return s.record(ctx, actor, attendance.EntryTypeClockOut, nowLocal, req.Notes)
}

func (s *AttendanceServiceImpl) record(ctx context.Context, actor user.Actor, entryType attendance.EntryType, at time.Time, notes *string) (attendance.EntryResponse, error) {
	entry, err := s.AttendanceRepository.Create(ctx, attendance.Entry{
		ID:         uuid.Must(uuid.NewV7()).String(),
		CompanyID:  actor.CompanyID,
		EmployeeID: *actor.EmployeeID,
		EntryType:  entryType,
		Timestamp:  at.UTC(),
		Notes:      notes,
	})
	if err != nil {
		return attendance.EntryResponse{}, fmt.Errorf("failed to create attendance entry: %w", err)
	}

	slog.Info("Attendance entry recorded", "employee_id", entry.EmployeeID, "type", entry.EntryType)
	return attendance.NewEntryResponse(entry), nil
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context, actor user.Actor) (attendance.StatusResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return attendance.StatusResponse{}, err
	}

	loc, err := s.location(ctx, actor.CompanyID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	today := localMidnight(s.now().In(loc), loc)

	entries, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, actor.CompanyID, *actor.EmployeeID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to list today's entries: %w", err)
	}

	day := s.calculator.ComputeDay(entries)
	day.Date = today

	resp := attendance.StatusResponse{
		Date:    today.Format(validator.DateLayout),
		Entries: toResponses(entries),
		Today:   attendance.NewWorkDayResponse(day),
	}
	if n := len(entries); n > 0 {
		resp.ClockedIn = entries[n-1].EntryType == attendance.EntryTypeClockIn
	}
	return resp, nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) ([]attendance.EntryResponse, error) {
	if err := actor.RequireEmployee(); err != nil {
		return nil, err
	}
	if err := filter.Validate(false); err != nil {
		return nil, err
	}
	return s.listRange(ctx, actor.CompanyID, *actor.EmployeeID, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) ([]attendance.EntryResponse, error) {
	if err := actor.RequireManager(); err != nil {
		return nil, err
	}
	if err := filter.Validate(true); err != nil {
		return nil, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, filter.EmployeeID, actor.CompanyID); err != nil {
		return nil, err
	}
	return s.listRange(ctx, actor.CompanyID, filter.EmployeeID, filter)
}

func (s *AttendanceServiceImpl) listRange(ctx context.Context, companyID, employeeID string, filter attendance.RangeFilter) ([]attendance.EntryResponse, error) {
	loc, err := s.location(ctx, companyID)
	if err != nil {
		return nil, err
	}

	from := localMidnight(filter.FromDate, loc)
	until := localMidnight(filter.ToDate, loc).AddDate(0, 0, 1)
	entries, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, companyID, employeeID, from, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	return toResponses(entries), nil
}

// WorkSummary implements attendance.AttendanceService. Employees may only
// summarize their own entries; a blank employee defaults to the caller.
func (s *AttendanceServiceImpl) WorkSummary(ctx context.Context, actor user.Actor, filter attendance.RangeFilter) (attendance.SummaryResponse, error) {
	if err := actor.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	if filter.EmployeeID == "" && actor.IsEmployee() {
		filter.EmployeeID = *actor.EmployeeID
	}
	if !actor.IsManager() && !actor.Owns(filter.EmployeeID) {
		return attendance.SummaryResponse{}, attendance.ErrUnauthorized
	}
	if err := filter.Validate(true); err != nil {
		return attendance.SummaryResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, filter.EmployeeID, actor.CompanyID); err != nil {
		return attendance.SummaryResponse{}, err
	}

	period, err := s.calculator.ComputePeriod(ctx, actor.CompanyID, filter.EmployeeID, filter.FromDate, filter.ToDate)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	days := make([]attendance.WorkDayResponse, 0, len(period.Days))
	for _, d := range period.Days {
		days = append(days, attendance.NewWorkDayResponse(d))
	}
	return attendance.SummaryResponse{
		EmployeeID:         filter.EmployeeID,
		From:               filter.From,
		To:                 filter.To,
		DaysWorked:         period.DaysWorked,
		TotalOvertimeHours: period.TotalOvertimeHours,
		Days:               days,
	}, nil
}

func (s *AttendanceServiceImpl) location(ctx context.Context, companyID string) (*time.Location, error) {
	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return comp.Location(s.defaultLoc), nil
}

func toResponses(entries []attendance.Entry) []attendance.EntryResponse {
	out := make([]attendance.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, attendance.NewEntryResponse(e))
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
