package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/attendance"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, branch_id, date::text, is_working, start_time, end_time, is_approved, bonus`

// upsertAttendanceQuery never overwrites an approved row: the conflict branch only fires while
// the stored row is unapproved, so a locked row reports zero affected rows.
const upsertAttendanceQuery = `
	INSERT INTO attendance_records (id, employee_id, branch_id, date, is_working, start_time, end_time,
		is_approved, bonus, updated_at)
	VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, NOW())
	ON CONFLICT (employee_id, date) DO UPDATE SET
		branch_id = EXCLUDED.branch_id,
		is_working = EXCLUDED.is_working,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		is_approved = EXCLUDED.is_approved,
		bonus = EXCLUDED.bonus,
		updated_at = NOW()
	WHERE attendance_records.is_approved = FALSE
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var a attendance.Record
	err := row.Scan(&a.ID, &a.EmployeeID, &a.BranchID, &a.Date, &a.IsWorking, &a.StartTime, &a.EndTime, &a.IsApproved, &a.Bonus)
	return a, err
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		a, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records ORDER BY date ASC, employee_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return collectRecords(rows)
}

// ListRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRange(ctx context.Context, from, to string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records from %s to %s: %w", from, to, err)
	}

	return collectRecords(rows)
}

// GetByKey implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByKey(ctx context.Context, employeeID, date string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2::date`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, upsertAttendanceQuery, recordArgs(rec)...)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance record %s/%s: %w", rec.EmployeeID, rec.Date, err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordLocked
	}

	return nil
}

// UpsertMany implements attendance.AttendanceRepository. Callers that need the whole set applied
// or none of it run it inside a transaction.
func (a *attendanceRepository) UpsertMany(ctx context.Context, records []attendance.Record) (int, error) {
	q := GetQuerier(ctx, a.db)

	written := 0
	for _, rec := range records {
		commandTag, err := q.Exec(ctx, upsertAttendanceQuery, recordArgs(rec)...)
		if err != nil {
			return written, fmt.Errorf("failed to upsert attendance record %s/%s: %w", rec.EmployeeID, rec.Date, err)
		}
		written += int(commandTag.RowsAffected())
	}

	return written, nil
}

func recordArgs(rec attendance.Record) []interface{} {
	return []interface{}{
		rec.ID, rec.EmployeeID, rec.BranchID, rec.Date, rec.IsWorking,
		rec.StartTime, rec.EndTime, rec.IsApproved, rec.Bonus,
	}
}
