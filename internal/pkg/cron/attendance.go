package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/service/timesheet"
)

// AttendanceJobs holds the background maintenance tasks over the
// attendance store.
type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	engine         *timesheet.Engine
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	engine *timesheet.Engine,
	location *time.Location,
) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		engine:         engine,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("auto_checkout_expired_sessions", interval, j.AutoCheckoutExpired)
}

// AutoCheckoutExpired force-closes sessions left open past their day's
// local midnight. The check-out is pinned to that midnight boundary,
// never to the sweep's wall-clock time, so the computed hours are the
// same no matter how late the sweep runs. Today's still-open records
// are untouched: only records whose own date has ended qualify.
func (j *AttendanceJobs) AutoCheckoutExpired(ctx context.Context) error {
	nowLocal := j.now().In(j.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.location)

	expired, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("list expired open sessions: %w", err)
	}

	if len(expired) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range expired {
		if session.CheckIn == nil {
			continue
		}

		// Midnight at the start of the day after the record's own date.
		day := session.Date.In(j.location)
		boundary := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, j.location).AddDate(0, 0, 1)

		result, err := j.engine.Compute(*session.CheckIn, boundary)
		if err != nil {
			slog.Error("Sweeper: time accounting failed",
				"record_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}

		session.CheckOut = &boundary
		session.WorkingHours = result.WorkingHours
		session.OvertimeHours = result.OvertimeHours
		session.TOILHoursEarned = result.TOILHoursEarned
		session.IsWeekendWork = result.IsWeekendWork
		session.IsAutoCheckout = true

		// Same close-if-open guard as a user check-out: a session the
		// user closed between the listing and now is simply skipped.
		_, closed, err := j.attendanceRepo.CloseIfOpen(ctx, session)
		if err != nil {
			slog.Error("Sweeper: failed to auto-checkout session",
				"record_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}
		if !closed {
			continue
		}

		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Sweeper: auto-checked-out expired sessions", "count", closedCount)
	}
	return nil
}
