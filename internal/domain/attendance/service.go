package attendance

import "context"

// Service defines the attendance state machine. Per (user, day) the
// legal transitions are NoRecord -> Open (CheckIn) and Open -> Closed
// (CheckOut or the auto-checkout sweeper); nothing else.
type Service interface {
	// CheckIn creates today's record. Fails with ErrAlreadyCheckedIn if
	// one already exists.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes today's record. Fails with ErrNoActiveCheckIn if
	// none exists; returns the stored record unchanged if it is already
	// closed so client retries are safe.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// GetToday returns today's record, or nil if the user has none.
	GetToday(ctx context.Context, userID string) (*RecordResponse, error)

	ListHistory(ctx context.Context, userID string, filter HistoryFilter) (ListRecordsResponse, error)

	Get(ctx context.Context, id string) (RecordResponse, error)

	// AdminUpdate is the privileged correction path.
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (RecordResponse, error)
}
