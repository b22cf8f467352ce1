package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, user_id, date,
	check_in, check_out,
	check_in_latitude, check_in_longitude, check_in_accuracy, check_in_address,
	check_out_latitude, check_out_longitude, check_out_accuracy, check_out_address,
	status,
	working_hours, overtime_hours, toil_hours_earned,
	is_weekend_work, is_gps_verified, is_location_valid, requires_approval, is_auto_checkout,
	notes, admin_edited_by, admin_edited_at,
	created_at, updated_at`

func scanAttendanceRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date,
		&rec.CheckIn, &rec.CheckOut,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckInAccuracy, &rec.CheckInAddress,
		&rec.CheckOutLatitude, &rec.CheckOutLongitude, &rec.CheckOutAccuracy, &rec.CheckOutAddress,
		&rec.Status,
		&rec.WorkingHours, &rec.OvertimeHours, &rec.TOILHoursEarned,
		&rec.IsWeekendWork, &rec.IsGPSVerified, &rec.IsLocationValid, &rec.RequiresApproval, &rec.IsAutoCheckout,
		&rec.Notes, &rec.AdminEditedBy, &rec.AdminEditedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// CreateIfAbsent implements attendance.Repository. The partial insert
// races through the unique (user_id, date) index: exactly one of any
// number of concurrent callers gets a row back, the rest read the
// winner's row.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, record attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			user_id, date, check_in,
			check_in_latitude, check_in_longitude, check_in_accuracy, check_in_address,
			status, is_gps_verified, is_location_valid, requires_approval, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING` + attendanceColumns

	stored, err := scanAttendanceRecord(q.QueryRow(ctx, query,
		record.UserID,
		record.Date,
		record.CheckIn,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.CheckInAccuracy,
		record.CheckInAddress,
		record.Status,
		record.IsGPSVerified,
		record.IsLocationValid,
		record.RequiresApproval,
		record.Notes,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, false, fmt.Errorf("failed to create attendance record: %w", err)
	}

	// Conflict path: another request already holds the day.
	existing, err := a.GetByUserAndDate(ctx, record.UserID, record.Date)
	if err != nil {
		return attendance.Record{}, false, err
	}
	if existing == nil {
		return attendance.Record{}, false, fmt.Errorf("attendance record vanished after insert conflict")
	}

	return *existing, false, nil
}

// CloseIfOpen implements attendance.Repository. The check_out IS NULL
// predicate makes concurrent closes single-winner: the update only
// lands on a still-open row.
func (a *attendanceRepository) CloseIfOpen(ctx context.Context, record attendance.Record) (attendance.Record, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_out = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			check_out_accuracy = $5,
			check_out_address = $6,
			working_hours = $7,
			overtime_hours = $8,
			toil_hours_earned = $9,
			is_weekend_work = $10,
			is_auto_checkout = $11,
			notes = $12,
			requires_approval = $13,
			updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
		RETURNING` + attendanceColumns

	stored, err := scanAttendanceRecord(q.QueryRow(ctx, query,
		record.ID,
		record.CheckOut,
		record.CheckOutLatitude,
		record.CheckOutLongitude,
		record.CheckOutAccuracy,
		record.CheckOutAddress,
		record.WorkingHours,
		record.OvertimeHours,
		record.TOILHoursEarned,
		record.IsWeekendWork,
		record.IsAutoCheckout,
		record.Notes,
		record.RequiresApproval,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, false, fmt.Errorf("failed to close attendance record: %w", err)
	}

	// Already closed; hand back whatever the winner stored.
	current, err := a.GetByID(ctx, record.ID)
	if err != nil {
		return attendance.Record{}, false, err
	}

	return current, false, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE id = $1`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.Repository. A nil record with
// a nil error means no record exists for that day.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND date = $2
		LIMIT 1`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by user and date: %w", err)
	}

	return &rec, nil
}

// ListByUser implements attendance.Repository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argPos := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendance_records WHERE ` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT`+attendanceColumns+`
		FROM attendance_records
		WHERE %s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// ListOpenBefore implements attendance.Repository. It feeds the
// auto-checkout sweeper: every record from a day before the cutoff
// that still has no check-out.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE date < $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		ORDER BY date ASC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open attendance records: %w", err)
	}

	return records, nil
}

// Update implements attendance.Repository. Full-row rewrite for the
// admin correction path; the state-machine guards do not apply here.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			check_in = $2,
			check_out = $3,
			status = $4,
			working_hours = $5,
			overtime_hours = $6,
			toil_hours_earned = $7,
			is_weekend_work = $8,
			requires_approval = $9,
			notes = $10,
			admin_edited_by = $11,
			admin_edited_at = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + attendanceColumns

	stored, err := scanAttendanceRecord(q.QueryRow(ctx, query,
		record.ID,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.WorkingHours,
		record.OvertimeHours,
		record.TOILHoursEarned,
		record.IsWeekendWork,
		record.RequiresApproval,
		record.Notes,
		record.AdminEditedBy,
		record.AdminEditedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return stored, nil
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}
