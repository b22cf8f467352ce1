// Package gps defines the position source the fallback coordinator
// consults when a request carries no client-reported fix.
package gps

import (
	"context"
	"errors"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
)

var (
	ErrUnavailable      = errors.New("gps unavailable")
	ErrPermissionDenied = errors.New("gps permission denied")
)

// Provider acquires a position fix. Implementations must honor context
// cancellation; the coordinator bounds every call with a deadline and
// never retries.
type Provider interface {
	Acquire(ctx context.Context) (attendance.Position, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (attendance.Position, error)

func (f ProviderFunc) Acquire(ctx context.Context) (attendance.Position, error) {
	return f(ctx)
}
