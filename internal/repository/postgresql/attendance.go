package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/bizops-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create appends a clock entry. Entries are never updated or deleted afterwards.
func (r *attendanceRepository) Create(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_entries (id, company_id, employee_id, entry_type, timestamp, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.CompanyID, entry.EmployeeID, entry.EntryType, entry.Timestamp, entry.Notes,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return attendance.Entry{}, fmt.Errorf("failed to create attendance entry: %w", err)
	}
	return entry, nil
}

func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, entry_type, timestamp, notes, created_at
		FROM attendance_entries
		WHERE company_id = $1 AND employee_id = $2
		  AND timestamp >= $3 AND timestamp < $4
		ORDER BY timestamp, created_at
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	entries := []attendance.Entry{}
	for rows.Next() {
		var e attendance.Entry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.EmployeeID, &e.EntryType, &e.Timestamp, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance entries: %w", err)
	}
	return entries, nil
}

func (r *attendanceRepository) GetLatest(ctx context.Context, companyID, employeeID string) (*attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, entry_type, timestamp, notes, created_at
		FROM attendance_entries
		WHERE company_id = $1 AND employee_id = $2
		ORDER BY timestamp DESC, created_at DESC
		LIMIT 1
	`

	var e attendance.Entry
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.EntryType, &e.Timestamp, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attendance entry: %w", err)
	}
	return &e, nil
}
