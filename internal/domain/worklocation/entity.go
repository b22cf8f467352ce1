package worklocation

import "time"

// WorkLocation is a registered work site: a circular geofence around a
// center coordinate. IsRemoteAllowed marks sites whose staff may work
// off-site without per-record approval.
type WorkLocation struct {
	ID              string
	Name            string
	Latitude        float64
	Longitude       float64
	RadiusMeters    float64
	IsActive        bool
	IsRemoteAllowed bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
