package worklocation

import (
	"context"
	"fmt"

	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
)

type WorkLocationServiceImpl struct {
	repo worklocation.Repository
}

func NewWorkLocationService(repo worklocation.Repository) worklocation.Service {
	return &WorkLocationServiceImpl{repo: repo}
}

// List implements worklocation.Service.
func (s *WorkLocationServiceImpl) List(ctx context.Context) ([]worklocation.WorkLocationResponse, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}

	responses := make([]worklocation.WorkLocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapLocationToResponse(loc))
	}

	return responses, nil
}

// Get implements worklocation.Service.
func (s *WorkLocationServiceImpl) Get(ctx context.Context, id string) (worklocation.WorkLocationResponse, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	return mapLocationToResponse(loc), nil
}

// Create implements worklocation.Service. New geofences activate
// immediately; subsequent check-ins see them, existing records keep
// their stored classification.
func (s *WorkLocationServiceImpl) Create(ctx context.Context, req worklocation.CreateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	stored, err := s.repo.Create(ctx, worklocation.WorkLocation{
		Name:            req.Name,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		RadiusMeters:    req.RadiusMeters,
		IsActive:        true,
		IsRemoteAllowed: req.IsRemoteAllowed,
	})
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	return mapLocationToResponse(stored), nil
}

// Update implements worklocation.Service.
func (s *WorkLocationServiceImpl) Update(ctx context.Context, req worklocation.UpdateWorkLocationRequest) (worklocation.WorkLocationResponse, error) {
	if err := req.Validate(); err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	loc, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Latitude != nil {
		loc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		loc.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		loc.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.IsRemoteAllowed != nil {
		loc.IsRemoteAllowed = *req.IsRemoteAllowed
	}

	stored, err := s.repo.Update(ctx, loc)
	if err != nil {
		return worklocation.WorkLocationResponse{}, err
	}

	return mapLocationToResponse(stored), nil
}

// Deactivate implements worklocation.Service.
func (s *WorkLocationServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func mapLocationToResponse(loc worklocation.WorkLocation) worklocation.WorkLocationResponse {
	return worklocation.WorkLocationResponse{
		ID:              loc.ID,
		Name:            loc.Name,
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		RadiusMeters:    loc.RadiusMeters,
		IsActive:        loc.IsActive,
		IsRemoteAllowed: loc.IsRemoteAllowed,
		CreatedAt:       loc.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       loc.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
