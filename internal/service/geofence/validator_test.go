package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/domain/worklocation"
)

// Office at Monas, Jakarta.
const (
	officeLat = -6.1754
	officeLon = 106.8272
)

func office(radius float64) worklocation.WorkLocation {
	return worklocation.WorkLocation{
		ID:           "loc-hq",
		Name:         "HQ",
		Latitude:     officeLat,
		Longitude:    officeLon,
		RadiusMeters: radius,
		IsActive:     true,
	}
}

func TestClassify_InsideRadius(t *testing.T) {
	v := NewValidator()

	// ~50m east of the office center (1e-4 deg lon at this latitude).
	p := attendance.Position{Latitude: officeLat, Longitude: officeLon + 0.00045, AccuracyMeters: 10}

	res, err := v.Classify(p, []worklocation.WorkLocation{office(100)})
	require.NoError(t, err)
	assert.True(t, res.IsLocationValid)
	assert.False(t, res.RequiresApproval)
	assert.Equal(t, attendance.StatusPresent, res.Status)
	require.NotNil(t, res.Matched)
	assert.Equal(t, "loc-hq", res.Matched.ID)
}

func TestClassify_ExactCenterAlwaysMatches(t *testing.T) {
	v := NewValidator()
	p := attendance.Position{Latitude: officeLat, Longitude: officeLon}

	for _, radius := range []float64{0, 1, 100, 5000} {
		res, err := v.Classify(p, []worklocation.WorkLocation{office(radius)})
		require.NoError(t, err)
		assert.True(t, res.IsLocationValid, "radius=%f", radius)
	}
}

func TestClassify_OutsideRadiusNoRemote(t *testing.T) {
	v := NewValidator()

	// ~500m away from a 100m geofence.
	p := attendance.Position{Latitude: officeLat, Longitude: officeLon + 0.0045}

	res, err := v.Classify(p, []worklocation.WorkLocation{office(100)})
	require.NoError(t, err)
	assert.False(t, res.IsLocationValid)
	assert.True(t, res.RequiresApproval)
	assert.Nil(t, res.Matched)
}

func TestClassify_OutsideRadiusRemoteAllowed(t *testing.T) {
	v := NewValidator()

	remote := office(100)
	remote.IsRemoteAllowed = true

	p := attendance.Position{Latitude: officeLat, Longitude: officeLon + 0.0045}

	res, err := v.Classify(p, []worklocation.WorkLocation{remote})
	require.NoError(t, err)
	assert.False(t, res.IsLocationValid)
	assert.False(t, res.RequiresApproval)
	assert.Equal(t, attendance.StatusRemote, res.Status)
}

func TestClassify_JustBeyondBoundaryNeverMatches(t *testing.T) {
	v := NewValidator()

	loc := office(100)
	// ~111m north of center: clearly past a 100m radius.
	p := attendance.Position{Latitude: officeLat + 0.001, Longitude: officeLon}

	res, err := v.Classify(p, []worklocation.WorkLocation{loc})
	require.NoError(t, err)
	assert.False(t, res.IsLocationValid)
}

func TestClassify_SmallestRadiusWinsOnOverlap(t *testing.T) {
	v := NewValidator()

	wide := office(1000)
	wide.ID = "loc-campus"
	narrow := office(100)
	narrow.ID = "loc-building"

	p := attendance.Position{Latitude: officeLat, Longitude: officeLon}

	res, err := v.Classify(p, []worklocation.WorkLocation{wide, narrow})
	require.NoError(t, err)
	require.NotNil(t, res.Matched)
	assert.Equal(t, "loc-building", res.Matched.ID)
}

func TestClassify_InactiveLocationIgnored(t *testing.T) {
	v := NewValidator()

	inactive := office(100)
	inactive.IsActive = false

	p := attendance.Position{Latitude: officeLat, Longitude: officeLon}

	res, err := v.Classify(p, []worklocation.WorkLocation{inactive})
	require.NoError(t, err)
	assert.False(t, res.IsLocationValid)
	assert.True(t, res.RequiresApproval)
}

func TestClassify_InvalidCoordinates(t *testing.T) {
	v := NewValidator()
	locations := []worklocation.WorkLocation{office(100)}

	bad := []attendance.Position{
		{Latitude: 91, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: 0, Longitude: -180.1},
	}
	for _, p := range bad {
		_, err := v.Classify(p, locations)
		assert.ErrorIs(t, err, attendance.ErrInvalidCoordinates, "position=%+v", p)
	}
}

func TestClassify_ZeroAccuracyAccepted(t *testing.T) {
	v := NewValidator()
	p := attendance.Position{Latitude: officeLat, Longitude: officeLon, AccuracyMeters: 0}

	res, err := v.Classify(p, []worklocation.WorkLocation{office(100)})
	require.NoError(t, err)
	assert.True(t, res.IsLocationValid)
}

func TestClassify_NoLocationsConfigured(t *testing.T) {
	v := NewValidator()
	p := attendance.Position{Latitude: officeLat, Longitude: officeLon}

	res, err := v.Classify(p, nil)
	require.NoError(t, err)
	assert.False(t, res.IsLocationValid)
	assert.True(t, res.RequiresApproval)
}
