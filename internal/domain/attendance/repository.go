package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The two
// mutating operations that matter are conditional by contract:
// CreateIfAbsent and CloseIfOpen are the atomic guards that keep two
// concurrent requests for the same user/day from both succeeding.
type Repository interface {
	// CreateIfAbsent inserts the record unless one already exists for
	// (UserID, Date). The bool result is false when the insert lost to
	// an existing record, which is then returned instead.
	CreateIfAbsent(ctx context.Context, record Record) (Record, bool, error)

	// CloseIfOpen applies the check-out fields of record only while the
	// stored row is still open. The bool result is false when the row
	// was already closed; the stored row is returned either way.
	CloseIfOpen(ctx context.Context, record Record) (Record, bool, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate returns nil when no record exists for that day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Record, int64, error)

	// ListOpenBefore returns every open record whose work day is before
	// the given date. Used by the auto-checkout sweeper.
	ListOpenBefore(ctx context.Context, date time.Time) ([]Record, error)

	// Update rewrites a record (privileged admin edits only).
	Update(ctx context.Context, record Record) (Record, error)
}
