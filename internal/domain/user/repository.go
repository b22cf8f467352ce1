package user

import "context"

// Repository defines data access for users. The attendance core only
// ever reads users; account CRUD lives in the surrounding platform.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
