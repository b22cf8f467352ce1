package worklocation

import "context"

// Service defines work-location management (admin surface).
type Service interface {
	List(ctx context.Context) ([]WorkLocationResponse, error)
	Get(ctx context.Context, id string) (WorkLocationResponse, error)
	Create(ctx context.Context, req CreateWorkLocationRequest) (WorkLocationResponse, error)
	Update(ctx context.Context, req UpdateWorkLocationRequest) (WorkLocationResponse, error)
	Deactivate(ctx context.Context, id string) error
}
