package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
	"github.com/workpulse/hr-backend-go/internal/pkg/gps"
)

func TestFallbackCheckIn_UsesAcquiredFix(t *testing.T) {
	svc, _ := newTestService(t, hqLocation)
	setNow(svc, 2026, time.March, 2, 9, 0)

	provider := gps.ProviderFunc(func(context.Context) (attendance.Position, error) {
		return attendance.Position{
			Latitude:       hqLocation.Latitude,
			Longitude:      hqLocation.Longitude,
			AccuracyMeters: 8,
		}, nil
	})

	coordinator := NewFallbackCoordinator(provider, time.Second, svc)

	resp, err := coordinator.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID: testUserID,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsGPSVerified)
	assert.True(t, resp.IsLocationValid)
	assert.False(t, resp.RequiresApproval)
	require.NotNil(t, resp.CheckInLatitude)
	assert.InDelta(t, hqLocation.Latitude, *resp.CheckInLatitude, 0.0001)
}

func TestFallbackCheckIn_DegradesWhenUnavailable(t *testing.T) {
	svc, _ := newTestService(t, hqLocation)
	setNow(svc, 2026, time.March, 2, 9, 0)

	provider := gps.ProviderFunc(func(context.Context) (attendance.Position, error) {
		return attendance.Position{}, gps.ErrUnavailable
	})

	coordinator := NewFallbackCoordinator(provider, time.Second, svc)

	resp, err := coordinator.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID: testUserID,
	})
	require.NoError(t, err)

	assert.False(t, resp.IsGPSVerified)
	assert.True(t, resp.RequiresApproval)
	assert.Nil(t, resp.CheckInLatitude)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "GPS unavailable")
}

func TestFallbackCheckIn_SingleBoundedAttempt(t *testing.T) {
	svc, _ := newTestService(t, hqLocation)
	setNow(svc, 2026, time.March, 2, 9, 0)

	attempts := 0
	provider := gps.ProviderFunc(func(ctx context.Context) (attendance.Position, error) {
		attempts++
		<-ctx.Done()
		return attendance.Position{}, ctx.Err()
	})

	coordinator := NewFallbackCoordinator(provider, 10*time.Millisecond, svc)

	start := time.Now()
	resp, err := coordinator.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID: testUserID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, attempts)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, resp.RequiresApproval)
}

func TestFallbackCheckIn_ExplicitPositionSkipsProvider(t *testing.T) {
	svc, _ := newTestService(t, hqLocation)
	setNow(svc, 2026, time.March, 2, 9, 0)

	provider := gps.ProviderFunc(func(context.Context) (attendance.Position, error) {
		t.Fatal("provider must not be called when a position is supplied")
		return attendance.Position{}, nil
	})

	coordinator := NewFallbackCoordinator(provider, time.Second, svc)

	resp, err := coordinator.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID:      testUserID,
		Position:    atHQ(),
		GPSVerified: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsGPSVerified)
}

func TestFallbackCheckOut_DegradesWhenPermissionDenied(t *testing.T) {
	svc, _ := newTestService(t, hqLocation)
	setNow(svc, 2026, time.March, 2, 9, 0)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		UserID: testUserID, Position: atHQ(), GPSVerified: true,
	})
	require.NoError(t, err)

	provider := gps.ProviderFunc(func(context.Context) (attendance.Position, error) {
		return attendance.Position{}, gps.ErrPermissionDenied
	})
	coordinator := NewFallbackCoordinator(provider, time.Second, svc)

	setNow(svc, 2026, time.March, 2, 17, 0)
	resp, err := coordinator.CheckOut(context.Background(), attendance.CheckOutRequest{
		UserID: testUserID,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutTime)
	assert.Nil(t, resp.CheckOutLatitude)
	assert.InDelta(t, 8.0, resp.WorkingHours, 0.001)

	// A degraded closing fix flags the record for manual review and
	// records the failure, even after a verified check-in.
	assert.True(t, resp.RequiresApproval)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "GPS unavailable at check-out")
}
