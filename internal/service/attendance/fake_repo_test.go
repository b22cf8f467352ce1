package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
)

// fakeAttendanceRepo is an in-memory attendance.Repository with the
// same single-winner semantics as the SQL implementation.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	nextID  int
	records map[string]attendance.Record
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, record attendance.Record) (attendance.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(record.UserID, record.Date)
	for _, existing := range f.records {
		if dayKey(existing.UserID, existing.Date) == key {
			return existing, false, nil
		}
	}

	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, true, nil
}

func (f *fakeAttendanceRepo) CloseIfOpen(_ context.Context, record attendance.Record) (attendance.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.records[record.ID]
	if !ok {
		return attendance.Record{}, false, attendance.ErrRecordNotFound
	}
	if stored.CheckOut != nil {
		return stored, false, nil
	}

	record.CreatedAt = stored.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	f.records[record.ID] = record
	return record, true, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return stored, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(userID, date)
	for _, stored := range f.records {
		if dayKey(stored.UserID, stored.Date) == key {
			rec := stored
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []attendance.Record
	for _, stored := range f.records {
		if stored.UserID != userID {
			continue
		}
		day := stored.Date.Format("2006-01-02")
		if filter.StartDate != nil && *filter.StartDate != "" && day < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && day > *filter.EndDate {
			continue
		}
		matched = append(matched, stored)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, date time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var open []attendance.Record
	for _, stored := range f.records {
		if stored.Date.Before(date) && stored.IsOpen() {
			open = append(open, stored)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].Date.Before(open[j].Date)
	})
	return open, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.records[record.ID]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	record.CreatedAt = stored.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	f.records[record.ID] = record
	return record, nil
}

// fakeWorkLocationRepo serves a fixed geofence set.
type fakeWorkLocationRepo struct {
	locations []worklocation.WorkLocation
}

func (f *fakeWorkLocationRepo) ListActive(context.Context) ([]worklocation.WorkLocation, error) {
	var active []worklocation.WorkLocation
	for _, loc := range f.locations {
		if loc.IsActive {
			active = append(active, loc)
		}
	}
	return active, nil
}

func (f *fakeWorkLocationRepo) List(context.Context) ([]worklocation.WorkLocation, error) {
	return f.locations, nil
}

func (f *fakeWorkLocationRepo) GetByID(_ context.Context, id string) (worklocation.WorkLocation, error) {
	for _, loc := range f.locations {
		if loc.ID == id {
			return loc, nil
		}
	}
	return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
}

func (f *fakeWorkLocationRepo) Create(_ context.Context, loc worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	f.locations = append(f.locations, loc)
	return loc, nil
}

func (f *fakeWorkLocationRepo) Update(_ context.Context, loc worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	for i := range f.locations {
		if f.locations[i].ID == loc.ID {
			f.locations[i] = loc
			return loc, nil
		}
	}
	return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
}

func (f *fakeWorkLocationRepo) Deactivate(_ context.Context, id string) error {
	for i := range f.locations {
		if f.locations[i].ID == id {
			f.locations[i].IsActive = false
			return nil
		}
	}
	return worklocation.ErrWorkLocationNotFound
}
