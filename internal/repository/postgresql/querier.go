package postgresql

import (
	"context"

	"github.com/workpulse/hr-backend-go/internal/pkg/database"
)

// GetQuerier is the single seam repositories run their statements
// through. Every mutation in this store is a one-statement conditional
// write, so the querier is always the pool.
func GetQuerier(_ context.Context, db *database.DB) database.Querier {
	return db.Pool
}
