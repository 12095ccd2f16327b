package attendance

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Calculator derives worked hours and overtime from clock entries.
type Calculator struct {
	attendanceRepo attendance.AttendanceRepository
	companyRepo    company.CompanyRepository
	standardHours  decimal.Decimal
	defaultLoc     *time.Location
}

func NewCalculator(
	attendanceRepo attendance.AttendanceRepository,
	companyRepo company.CompanyRepository,
	standardHours int,
	defaultLoc *time.Location,
) *Calculator {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Calculator{
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
		standardHours:  decimal.NewFromInt(int64(standardHours)),
		defaultLoc:     defaultLoc,
	}
}

// ComputeDay pairs each CLOCK_IN with an immediately following CLOCK_OUT.
// Every other adjacency is skipped. Overtime is the excess over the standard
// hours of each pair taken on its own, so short pairs never add up to overtime.
func (c *Calculator) ComputeDay(entries []attendance.Entry) attendance.WorkDayResult {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b attendance.Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	result := attendance.WorkDayResult{
		WorkedHours:   decimal.Zero,
		OvertimeHours: decimal.Zero,
	}
	for i := 0; i+1 < len(sorted); i++ {
		in, out := sorted[i], sorted[i+1]
		if in.EntryType != attendance.EntryTypeClockIn || out.EntryType != attendance.EntryTypeClockOut {
			continue
		}

		minutes := int64(out.Timestamp.Sub(in.Timestamp) / time.Minute)
		hours := money.Round2(decimal.NewFromInt(minutes).Div(sixty))

		result.WorkedHours = result.WorkedHours.Add(hours)
		if hours.GreaterThan(c.standardHours) {
			result.OvertimeHours = result.OvertimeHours.Add(hours.Sub(c.standardHours))
		}
		result.Worked = true
	}

	return result
}

// ComputePeriod evaluates every calendar date in [start, end] in the company's
// time zone. Dates without entries are not counted.
func (c *Calculator) ComputePeriod(ctx context.Context, companyID, employeeID string, start, end time.Time) (attendance.PeriodResult, error) {
	result := attendance.PeriodResult{TotalOvertimeHours: decimal.Zero}

	loc, err := c.location(ctx, companyID)
	if err != nil {
		return result, err
	}

	from := localMidnight(start, loc)
	until := localMidnight(end, loc).AddDate(0, 0, 1)
	if !from.Before(until) {
		return result, nil
	}

	entries, err := c.attendanceRepo.ListByEmployeeAndRange(ctx, companyID, employeeID, from, until)
	if err != nil {
		return result, fmt.Errorf("failed to list attendance entries: %w", err)
	}

	byDate := make(map[string][]attendance.Entry)
	for _, e := range entries {
		key := e.Timestamp.In(loc).Format(validator.DateLayout)
		byDate[key] = append(byDate[key], e)
	}

	for day := from; day.Before(until); day = day.AddDate(0, 0, 1) {
		dayEntries, ok := byDate[day.Format(validator.DateLayout)]
		if !ok {
			continue
		}

		dr := c.ComputeDay(dayEntries)
		dr.Date = day
		result.Days = append(result.Days, dr)
		if dr.Worked {
			result.DaysWorked++
			result.TotalOvertimeHours = result.TotalOvertimeHours.Add(dr.OvertimeHours)
		}
	}

	return result, nil
}

func (c *Calculator) location(ctx context.Context, companyID string) (*time.Location, error) {
	comp, err := c.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return comp.Location(c.defaultLoc), nil
}

// localMidnight reinterprets the calendar date of t as midnight in loc.
func localMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
