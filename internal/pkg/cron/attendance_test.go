package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/service/timesheet"
)

// sweeperRepo implements the slice of attendance.Repository the
// sweeper touches; the rest is unreachable from the job.
type sweeperRepo struct {
	records map[string]attendance.Record
}

func newSweeperRepo(records ...attendance.Record) *sweeperRepo {
	r := &sweeperRepo{records: make(map[string]attendance.Record)}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *sweeperRepo) ListOpenBefore(_ context.Context, date time.Time) ([]attendance.Record, error) {
	var open []attendance.Record
	for _, rec := range r.records {
		if rec.Date.Before(date) && rec.IsOpen() {
			open = append(open, rec)
		}
	}
	return open, nil
}

func (r *sweeperRepo) CloseIfOpen(_ context.Context, record attendance.Record) (attendance.Record, bool, error) {
	stored := r.records[record.ID]
	if stored.CheckOut != nil {
		return stored, false, nil
	}
	r.records[record.ID] = record
	return record, true, nil
}

func (r *sweeperRepo) CreateIfAbsent(context.Context, attendance.Record) (attendance.Record, bool, error) {
	panic("not used by sweeper")
}

func (r *sweeperRepo) GetByID(context.Context, string) (attendance.Record, error) {
	panic("not used by sweeper")
}

func (r *sweeperRepo) GetByUserAndDate(context.Context, string, time.Time) (*attendance.Record, error) {
	panic("not used by sweeper")
}

func (r *sweeperRepo) ListByUser(context.Context, string, attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	panic("not used by sweeper")
}

func (r *sweeperRepo) Update(context.Context, attendance.Record) (attendance.Record, error) {
	panic("not used by sweeper")
}

func jakartaTime(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func openRecord(id string, loc *time.Location, year int, month time.Month, day, hour, min int) attendance.Record {
	checkIn := time.Date(year, month, day, hour, min, 0, 0, loc)
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return attendance.Record{
		ID:      id,
		UserID:  "user-" + id,
		Date:    date,
		CheckIn: &checkIn,
		Status:  attendance.StatusPresent,
	}
}

func newSweeper(repo attendance.Repository, loc *time.Location, now time.Time) *AttendanceJobs {
	jobs := NewAttendanceJobs(repo, timesheet.NewEngine(8, timesheet.WeekendTOILFullHours, loc), loc)
	jobs.now = func() time.Time { return now }
	return jobs
}

func TestAutoCheckoutExpired_ClosesAtOwnMidnight(t *testing.T) {
	loc := jakartaTime(t)

	// Checked in Monday 09:00, never checked out. Sweep runs Tuesday
	// 00:05 local.
	repo := newSweeperRepo(openRecord("1", loc, 2026, time.March, 2, 9, 0))
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 3, 0, 5, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))

	closed := repo.records["1"]
	require.NotNil(t, closed.CheckOut)
	assert.True(t, closed.IsAutoCheckout)

	// Closed at Tuesday 00:00 local, not at the sweep's wall clock.
	wantBoundary := time.Date(2026, time.March, 3, 0, 0, 0, 0, loc)
	assert.True(t, closed.CheckOut.Equal(wantBoundary))
	assert.InDelta(t, 15.0, closed.WorkingHours, 0.001)
	assert.InDelta(t, 7.0, closed.OvertimeHours, 0.001)
}

func TestAutoCheckoutExpired_LateSweepSameResult(t *testing.T) {
	loc := jakartaTime(t)

	// Sweep delayed until Tuesday noon; the boundary must not move.
	repo := newSweeperRepo(openRecord("1", loc, 2026, time.March, 2, 9, 0))
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 3, 12, 0, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))

	closed := repo.records["1"]
	require.NotNil(t, closed.CheckOut)
	wantBoundary := time.Date(2026, time.March, 3, 0, 0, 0, 0, loc)
	assert.True(t, closed.CheckOut.Equal(wantBoundary))
	assert.InDelta(t, 15.0, closed.WorkingHours, 0.001)
}

func TestAutoCheckoutExpired_SkipsCurrentDay(t *testing.T) {
	loc := jakartaTime(t)

	repo := newSweeperRepo(openRecord("1", loc, 2026, time.March, 2, 9, 0))
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 2, 23, 0, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))

	assert.Nil(t, repo.records["1"].CheckOut)
	assert.False(t, repo.records["1"].IsAutoCheckout)
}

func TestAutoCheckoutExpired_Idempotent(t *testing.T) {
	loc := jakartaTime(t)

	repo := newSweeperRepo(openRecord("1", loc, 2026, time.March, 2, 9, 0))
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 3, 0, 5, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))
	first := repo.records["1"]

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))
	second := repo.records["1"]

	assert.Equal(t, first, second)
}

func TestAutoCheckoutExpired_WeekendTOIL(t *testing.T) {
	loc := jakartaTime(t)

	// Saturday session abandoned. Full-hours policy banks all hours
	// worked until midnight.
	repo := newSweeperRepo(openRecord("1", loc, 2026, time.March, 7, 10, 0))
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 8, 0, 5, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))

	closed := repo.records["1"]
	require.NotNil(t, closed.CheckOut)
	assert.True(t, closed.IsWeekendWork)
	assert.InDelta(t, 14.0, closed.WorkingHours, 0.001)
	assert.InDelta(t, 14.0, closed.TOILHoursEarned, 0.001)
}

func TestAutoCheckoutExpired_MultipleDaysBehind(t *testing.T) {
	loc := jakartaTime(t)

	// Two stale sessions from different days, one record already
	// closed. Each stale session closes at its own day's boundary.
	closedOut := time.Date(2026, time.March, 3, 17, 0, 0, 0, loc)
	alreadyClosed := openRecord("3", loc, 2026, time.March, 3, 9, 0)
	alreadyClosed.CheckOut = &closedOut

	repo := newSweeperRepo(
		openRecord("1", loc, 2026, time.March, 2, 9, 0),
		openRecord("2", loc, 2026, time.March, 4, 8, 0),
		alreadyClosed,
	)
	jobs := newSweeper(repo, loc, time.Date(2026, time.March, 5, 0, 10, 0, 0, loc))

	require.NoError(t, jobs.AutoCheckoutExpired(context.Background()))

	first := repo.records["1"]
	require.NotNil(t, first.CheckOut)
	assert.True(t, first.CheckOut.Equal(time.Date(2026, time.March, 3, 0, 0, 0, 0, loc)))

	second := repo.records["2"]
	require.NotNil(t, second.CheckOut)
	assert.True(t, second.CheckOut.Equal(time.Date(2026, time.March, 5, 0, 0, 0, 0, loc)))

	assert.False(t, repo.records["3"].IsAutoCheckout)
	assert.True(t, repo.records["3"].CheckOut.Equal(closedOut))
}
