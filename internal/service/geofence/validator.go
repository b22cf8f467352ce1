// Package geofence classifies a reported position against the set of
// active work-site geometries.
package geofence

import (
	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
	"github.com/workpulse/hr-backend-go/internal/pkg/geo"
)

// Classification is the outcome of validating one position.
type Classification struct {
	Status           attendance.Status
	IsLocationValid  bool
	RequiresApproval bool

	// Matched is the winning geofence when IsLocationValid; among
	// multiple matches the smallest radius wins.
	Matched *worklocation.WorkLocation

	// DistanceMeters is the distance to the matched location, or to the
	// nearest active location when nothing matched.
	DistanceMeters float64
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Classify validates p against the active locations. Positions with
// out-of-range coordinates fail with ErrInvalidCoordinates before any
// distance work. A zero accuracy means "unknown" and is accepted; the
// reported position is best-effort client data either way.
func (v *Validator) Classify(p attendance.Position, locations []worklocation.WorkLocation) (Classification, error) {
	if !geo.ValidLatitude(p.Latitude) || !geo.ValidLongitude(p.Longitude) {
		return Classification{}, attendance.ErrInvalidCoordinates
	}

	var (
		matched     *worklocation.WorkLocation
		matchedDist float64
		nearestDist = -1.0
		remoteOK    bool
	)

	for i := range locations {
		loc := locations[i]
		if !loc.IsActive {
			continue
		}
		if loc.IsRemoteAllowed {
			remoteOK = true
		}

		dist := geo.HaversineDistance(p.Latitude, p.Longitude, loc.Latitude, loc.Longitude)
		if nearestDist < 0 || dist < nearestDist {
			nearestDist = dist
		}

		if dist > loc.RadiusMeters {
			continue
		}

		// Smallest radius wins when geofences overlap.
		if matched == nil || loc.RadiusMeters < matched.RadiusMeters {
			matched = &loc
			matchedDist = dist
		}
	}

	if matched != nil {
		return Classification{
			Status:          attendance.StatusPresent,
			IsLocationValid: true,
			Matched:         matched,
			DistanceMeters:  matchedDist,
		}, nil
	}

	if nearestDist < 0 {
		nearestDist = 0
	}

	if remoteOK {
		return Classification{
			Status:         attendance.StatusRemote,
			DistanceMeters: nearestDist,
		}, nil
	}

	return Classification{
		Status:           attendance.StatusPresent,
		RequiresApproval: true,
		DistanceMeters:   nearestDist,
	}, nil
}
