package worklocation

import "context"

// Repository defines data access for work-site geofences.
type Repository interface {
	// ListActive returns every geofence the validator must consider.
	ListActive(ctx context.Context) ([]WorkLocation, error)

	List(ctx context.Context) ([]WorkLocation, error)

	GetByID(ctx context.Context, id string) (WorkLocation, error)

	Create(ctx context.Context, location WorkLocation) (WorkLocation, error)

	Update(ctx context.Context, location WorkLocation) (WorkLocation, error)

	// Deactivate soft-disables a geofence; records that referenced it
	// keep their stored classification.
	Deactivate(ctx context.Context, id string) error
}
