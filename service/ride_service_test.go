package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/models"
	"cabcab/service"
)

func TestRequestRide(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	details := e.requestRide(t, rider)

	ride := details.Ride
	assert.Equal(t, models.RideRequested, ride.Status)
	assert.False(t, ride.HasDriver())
	assert.GreaterOrEqual(t, ride.EstimatedFare, 5.0)
	assert.GreaterOrEqual(t, ride.Duration, 1)
	assert.NotNil(t, details.Pickup)
	assert.NotNil(t, details.Dropoff)
	assert.Equal(t, "123 Main St", details.Pickup.Address)
}

func TestRequestRideRequiresPassenger(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	driver := e.register(t, "driver@example.com", models.UserTypeDriver)
	_, err := e.svc.Ride().Request(ctx, driver.actor(t, e),
		service.AddressInput{Address: "123 Main St"},
		service.AddressInput{Address: "500 Broadway"})
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = e.svc.Ride().Request(ctx, nil,
		service.AddressInput{Address: "123 Main St"},
		service.AddressInput{Address: "500 Broadway"})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotAuthenticated))
}

func TestRequestRideRequiresAddresses(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	_, err := e.svc.Ride().Request(context.Background(), rider.actor(t, e),
		service.AddressInput{}, service.AddressInput{Address: "500 Broadway"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestFullRideLifecycle(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	requested := e.requestRide(t, rider)

	// The driver sees the open request and accepts it.
	open, err := e.svc.Ride().AvailableRides(ctx, driver.actor(t, e))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, requested.Ride.ID, open[0].Ride.ID)

	accepted, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), requested.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideAccepted, accepted.Ride.Status)
	require.True(t, accepted.Ride.HasDriver())
	assert.Equal(t, driver.user.ID, *accepted.Ride.DriverID)

	// Accepting took the driver off the market.
	assert.False(t, driver.actor(t, e).IsAvailable)

	started, err := e.svc.Ride().Start(ctx, driver.actor(t, e), requested.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideInProgress, started.Status)
	assert.NotNil(t, started.StartTime)

	completed, err := e.svc.Ride().Complete(ctx, driver.actor(t, e), requested.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideCompleted, completed.Status)
	assert.NotNil(t, completed.EndTime)
	require.NotNil(t, completed.ActualFare)
	assert.Equal(t, completed.EstimatedFare, *completed.ActualFare)

	// Completing put the driver back on the market.
	assert.True(t, driver.actor(t, e).IsAvailable)

	rated, err := e.svc.Ride().Rate(ctx, rider.actor(t, e), requested.Ride.ID, 5, "Great ride!")
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, *rated.Rating)
	require.NotNil(t, rated.Feedback)
	assert.Equal(t, "Great ride!", *rated.Feedback)

	// The rating landed on the driver.
	d := driver.actor(t, e)
	require.NotNil(t, d.Rating)
	assert.Equal(t, 5.0, *d.Rating)
	assert.Equal(t, 1, d.RatingCount)

	// Rating twice is rejected.
	_, err = e.svc.Ride().Rate(ctx, rider.actor(t, e), requested.Ride.ID, 4, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestAvailableRidesSkipsRidesWithMissingRecords(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	good := e.requestRide(t, rider)

	// A request whose locations were deleted out from under it.
	_, err := e.stg.Ride().Create(ctx, &models.Ride{
		ID:                "orphan",
		UserID:            rider.user.ID,
		PickupLocationID:  "gone-1",
		DropoffLocationID: "gone-2",
		Status:            models.RideRequested,
	})
	require.NoError(t, err)

	open, err := e.svc.Ride().AvailableRides(ctx, driver.actor(t, e))
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, good.Ride.ID, open[0].Ride.ID)
}

func TestAcceptRaceLoserGetsRideNotAvailable(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	first := e.readyDriver(t, admin, "first@example.com")
	second := e.readyDriver(t, admin, "second@example.com")

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Accept(ctx, first.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)

	_, err = e.svc.Ride().Accept(ctx, second.actor(t, e), ride.Ride.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeRideNotAvailable))
}

func TestUnverifiedDriverCannotAccept(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.register(t, "driver@example.com", models.UserTypeDriver)

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), ride.Ride.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = e.svc.Ride().AvailableRides(ctx, driver.actor(t, e))
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestUnavailableDriverCannotAccept(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	_, err := e.svc.Auth().SetAvailability(ctx, driver.actor(t, e), false)
	require.NoError(t, err)

	ride := e.requestRide(t, rider)

	_, err = e.svc.Ride().Accept(ctx, driver.actor(t, e), ride.Ride.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestPassengerCancelsRequestedRide(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	ride := e.requestRide(t, rider)

	cancelled, err := e.svc.Ride().Cancel(ctx, rider.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideCancelled, cancelled.Status)
}

func TestDriverCancelRestoresAvailability(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)
	require.False(t, driver.actor(t, e).IsAvailable)

	cancelled, err := e.svc.Ride().Cancel(ctx, driver.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideCancelled, cancelled.Status)
	assert.True(t, driver.actor(t, e).IsAvailable)

	// The cancelled ride carries no driver assignment.
	assert.False(t, cancelled.HasDriver())
	assert.Nil(t, cancelled.DriverID)
}

func TestCancelAcceptedRideClearsDriver(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)

	// Passenger cancels the accepted ride: a driver is set only while
	// the ride is accepted, in progress or completed.
	cancelled, err := e.svc.Ride().Cancel(ctx, rider.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideCancelled, cancelled.Status)
	assert.Nil(t, cancelled.DriverID)

	stored, err := e.svc.Ride().Get(ctx, rider.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)
	assert.False(t, stored.Ride.HasDriver())

	// And the driver went back on the market.
	assert.True(t, driver.actor(t, e).IsAvailable)
}

func TestCancelCompletedRideFails(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)
	rideID := ride.Ride.ID

	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)
	_, err = e.svc.Ride().Start(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)
	_, err = e.svc.Ride().Complete(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)

	_, err = e.svc.Ride().Cancel(ctx, rider.actor(t, e), rideID)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidTransition))
}

func TestCancelSomeoneElsesRideFails(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	other := e.register(t, "other@example.com", models.UserTypePassenger)

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Cancel(ctx, other.actor(t, e), ride.Ride.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestStartRequiresAssignedDriver(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	assigned := e.readyDriver(t, admin, "assigned@example.com")
	other := e.readyDriver(t, admin, "other@example.com")

	ride := e.requestRide(t, rider)
	rideID := ride.Ride.ID

	// Starting before any driver accepted is forbidden too.
	_, err := e.svc.Ride().Start(ctx, other.actor(t, e), rideID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	_, err = e.svc.Ride().Accept(ctx, assigned.actor(t, e), rideID)
	require.NoError(t, err)

	_, err = e.svc.Ride().Start(ctx, other.actor(t, e), rideID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestCompleteRequiresInProgress(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)
	rideID := ride.Ride.ID

	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)

	_, err = e.svc.Ride().Complete(ctx, driver.actor(t, e), rideID)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidTransition))
}

func TestRateRules(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	other := e.register(t, "other@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)
	rideID := ride.Ride.ID

	// Only completed rides can be rated.
	_, err := e.svc.Ride().Rate(ctx, rider.actor(t, e), rideID, 5, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidTransition))

	_, err = e.svc.Ride().Accept(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)
	_, err = e.svc.Ride().Start(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)
	_, err = e.svc.Ride().Complete(ctx, driver.actor(t, e), rideID)
	require.NoError(t, err)

	// Rating is clamped to 1..5.
	_, err = e.svc.Ride().Rate(ctx, rider.actor(t, e), rideID, 0, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	_, err = e.svc.Ride().Rate(ctx, rider.actor(t, e), rideID, 6, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	// Only the passenger who took the ride can rate it.
	_, err = e.svc.Ride().Rate(ctx, other.actor(t, e), rideID, 4, "")
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestDriverRatingIsWeightedAverage(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	runRide := func(rating int) {
		ride := e.requestRide(t, rider)
		rideID := ride.Ride.ID
		_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), rideID)
		require.NoError(t, err)
		_, err = e.svc.Ride().Start(ctx, driver.actor(t, e), rideID)
		require.NoError(t, err)
		_, err = e.svc.Ride().Complete(ctx, driver.actor(t, e), rideID)
		require.NoError(t, err)
		_, err = e.svc.Ride().Rate(ctx, rider.actor(t, e), rideID, rating, "")
		require.NoError(t, err)
	}

	runRide(5)
	runRide(2)

	d := driver.actor(t, e)
	require.NotNil(t, d.Rating)
	assert.Equal(t, 3.5, *d.Rating)
	assert.Equal(t, 2, d.RatingCount)
}

func TestGetRideVisibility(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	stranger := e.register(t, "stranger@example.com", models.UserTypePassenger)

	ride := e.requestRide(t, rider)

	_, err := e.svc.Ride().Get(ctx, rider.actor(t, e), ride.Ride.ID)
	assert.NoError(t, err)

	_, err = e.svc.Ride().Get(ctx, admin.actor(t, e), ride.Ride.ID)
	assert.NoError(t, err)

	_, err = e.svc.Ride().Get(ctx, stranger.actor(t, e), ride.Ride.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestListRidesFiltersByStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	rider := e.register(t, "rider@example.com", models.UserTypePassenger)

	first := e.requestRide(t, rider)
	e.requestRide(t, rider)

	_, err := e.svc.Ride().Cancel(ctx, rider.actor(t, e), first.Ride.ID)
	require.NoError(t, err)

	all, err := e.svc.Ride().ListForPassenger(ctx, rider.actor(t, e), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := e.svc.Ride().ListForPassenger(ctx, rider.actor(t, e), "CANCELLED")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.Ride.ID, cancelled[0].ID)
}
