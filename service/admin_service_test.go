package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/models"
)

func TestVerifyDriver(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	driver := e.register(t, "driver@example.com", models.UserTypeDriver)
	require.False(t, driver.user.IsVerified)

	verified, err := e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), "driver@example.com", true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.Password)

	unverified, err := e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), "driver@example.com", false)
	require.NoError(t, err)
	assert.False(t, unverified.IsVerified)
}

func TestVerifyDriverValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)

	_, err := e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), "ghost@example.com", true)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	_, err = e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), "rider@example.com", true)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	// Only admins may verify.
	_, err = e.svc.Admin().VerifyDriver(ctx, rider.actor(t, e), "rider@example.com", true)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestBanRules(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	e.register(t, "driver@example.com", models.UserTypeDriver)
	e.register(t, "rider@example.com", models.UserTypePassenger)

	// Only passengers can be banned.
	_, err := e.svc.Admin().BanPassenger(ctx, admin.actor(t, e), "driver@example.com", "reason", false)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	banned, err := e.svc.Admin().BanPassenger(ctx, admin.actor(t, e), "rider@example.com", "fraud", true)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	assert.True(t, banned.IsPermanentBan)
	assert.Equal(t, "fraud", banned.BanReason)

	// Unbanning someone who is not banned is an error.
	_, err = e.svc.Admin().UnbanPassenger(ctx, admin.actor(t, e), "rider@example.com")
	require.NoError(t, err)
	_, err = e.svc.Admin().UnbanPassenger(ctx, admin.actor(t, e), "rider@example.com")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestListDrivers(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	e.register(t, "b-driver@example.com", models.UserTypeDriver)
	e.register(t, "a-driver@example.com", models.UserTypeDriver)
	e.register(t, "rider@example.com", models.UserTypePassenger)

	_, err := e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), "a-driver@example.com", true)
	require.NoError(t, err)

	all, err := e.svc.Admin().ListDrivers(ctx, admin.actor(t, e), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Sorted by email, passwords stripped.
	assert.Equal(t, "a-driver@example.com", all[0].Email)
	assert.Equal(t, "b-driver@example.com", all[1].Email)
	assert.Empty(t, all[0].Password)

	verified, err := e.svc.Admin().ListDrivers(ctx, admin.actor(t, e), true)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, "a-driver@example.com", verified[0].Email)
}

func TestAdminDriverRides(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)
	driver := e.readyDriver(t, admin, "driver@example.com")

	ride := e.requestRide(t, rider)
	_, err := e.svc.Ride().Accept(ctx, driver.actor(t, e), ride.Ride.ID)
	require.NoError(t, err)

	rides, err := e.svc.Admin().DriverRides(ctx, admin.actor(t, e), "driver@example.com", "")
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, ride.Ride.ID, rides[0].ID)

	none, err := e.svc.Admin().DriverRides(ctx, admin.actor(t, e), "driver@example.com", "COMPLETED")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.svc.Admin().DriverRides(ctx, rider.actor(t, e), "driver@example.com", "")
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}
