package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/pkg/gps"
)

// FallbackCoordinator acquires a GPS fix for an attendance request and
// degrades gracefully when it cannot. A single attempt runs against the
// configured timeout; on failure the request proceeds without a
// position, flagged for manual approval.
type FallbackCoordinator struct {
	provider gps.Provider
	timeout  time.Duration
	service  attendance.Service
}

func NewFallbackCoordinator(provider gps.Provider, timeout time.Duration, service attendance.Service) *FallbackCoordinator {
	return &FallbackCoordinator{
		provider: provider,
		timeout:  timeout,
		service:  service,
	}
}

// CheckIn fills req.Position and req.GPSVerified from the provider when
// the request carries no position of its own, then delegates.
func (c *FallbackCoordinator) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if req.Position == nil {
		req.Position, req.GPSVerified = c.acquire(ctx)
		if !req.GPSVerified {
			req.Notes = appendFallbackNote(req.Notes, "check-in")
		}
	}
	return c.service.CheckIn(ctx, req)
}

// CheckOut mirrors CheckIn's acquisition behavior for the closing fix.
func (c *FallbackCoordinator) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if req.Position == nil {
		req.Position, req.GPSVerified = c.acquire(ctx)
		if !req.GPSVerified {
			req.Notes = appendFallbackNote(req.Notes, "check-out")
		}
	}
	return c.service.CheckOut(ctx, req)
}

func (c *FallbackCoordinator) GetToday(ctx context.Context, userID string) (*attendance.RecordResponse, error) {
	return c.service.GetToday(ctx, userID)
}

func (c *FallbackCoordinator) ListHistory(ctx context.Context, userID string, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	return c.service.ListHistory(ctx, userID, filter)
}

func (c *FallbackCoordinator) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	return c.service.Get(ctx, id)
}

func (c *FallbackCoordinator) AdminUpdate(ctx context.Context, req attendance.AdminUpdateRequest) (attendance.RecordResponse, error) {
	return c.service.AdminUpdate(ctx, req)
}

// acquire makes exactly one bounded attempt at a fix. There is no
// retry loop: a second attempt would double the caller's wait for a
// condition (no signal, denied permission) that rarely clears in
// seconds.
func (c *FallbackCoordinator) acquire(ctx context.Context) (*attendance.Position, bool) {
	if c.provider == nil {
		return nil, false
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	position, err := c.provider.Acquire(attemptCtx)
	if err != nil {
		switch {
		case errors.Is(err, gps.ErrPermissionDenied):
			slog.Warn("GPS permission denied, continuing without position")
		case errors.Is(err, gps.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
			slog.Warn("GPS fix unavailable, continuing without position", "timeout", c.timeout)
		default:
			slog.Warn("GPS acquisition failed, continuing without position", "error", err)
		}
		return nil, false
	}

	return &position, true
}

func appendFallbackNote(existing *string, stage string) *string {
	return appendNotes(existing, "GPS unavailable at "+stage)
}
