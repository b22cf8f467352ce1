package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
	"github.com/workpulse/hr-backend-go/internal/pkg/database"
)

type workLocationRepository struct {
	db *database.DB
}

const workLocationColumns = `
	id, name, latitude, longitude, radius_meters,
	is_active, is_remote_allowed, created_at, updated_at`

func scanWorkLocation(row pgx.Row) (worklocation.WorkLocation, error) {
	var loc worklocation.WorkLocation
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.IsActive, &loc.IsRemoteAllowed, &loc.CreatedAt, &loc.UpdatedAt,
	)
	return loc, err
}

func (w *workLocationRepository) list(ctx context.Context, query string) ([]worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var locations []worklocation.WorkLocation
	for rows.Next() {
		loc, err := scanWorkLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work locations: %w", err)
	}

	return locations, nil
}

// ListActive implements worklocation.Repository.
func (w *workLocationRepository) ListActive(ctx context.Context) ([]worklocation.WorkLocation, error) {
	query := `
		SELECT` + workLocationColumns + `
		FROM work_locations
		WHERE is_active = true
		ORDER BY name ASC`
	return w.list(ctx, query)
}

// List implements worklocation.Repository.
func (w *workLocationRepository) List(ctx context.Context) ([]worklocation.WorkLocation, error) {
	query := `
		SELECT` + workLocationColumns + `
		FROM work_locations
		ORDER BY name ASC`
	return w.list(ctx, query)
}

// GetByID implements worklocation.Repository.
func (w *workLocationRepository) GetByID(ctx context.Context, id string) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT` + workLocationColumns + `
		FROM work_locations
		WHERE id = $1`

	loc, err := scanWorkLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to get work location: %w", err)
	}

	return loc, nil
}

// Create implements worklocation.Repository.
func (w *workLocationRepository) Create(ctx context.Context, location worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_locations (
			name, latitude, longitude, radius_meters, is_active, is_remote_allowed
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING` + workLocationColumns

	stored, err := scanWorkLocation(q.QueryRow(ctx, query,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.RadiusMeters,
		location.IsActive,
		location.IsRemoteAllowed,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationExists
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to create work location: %w", err)
	}

	return stored, nil
}

// Update implements worklocation.Repository.
func (w *workLocationRepository) Update(ctx context.Context, location worklocation.WorkLocation) (worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_locations SET
			name = $2,
			latitude = $3,
			longitude = $4,
			radius_meters = $5,
			is_active = $6,
			is_remote_allowed = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + workLocationColumns

	stored, err := scanWorkLocation(q.QueryRow(ctx, query,
		location.ID,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.RadiusMeters,
		location.IsActive,
		location.IsRemoteAllowed,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationNotFound
		}
		if isUniqueViolation(err) {
			return worklocation.WorkLocation{}, worklocation.ErrWorkLocationExists
		}
		return worklocation.WorkLocation{}, fmt.Errorf("failed to update work location: %w", err)
	}

	return stored, nil
}

// Deactivate implements worklocation.Repository.
func (w *workLocationRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_locations SET
			is_active = false,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate work location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worklocation.ErrWorkLocationNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func NewWorkLocationRepository(db *database.DB) worklocation.Repository {
	return &workLocationRepository{db: db}
}
