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

func vehicleInput(plate string) service.VehicleInput {
	return service.VehicleInput{
		Make:         "Toyota",
		Model:        "Camry",
		Year:         2021,
		Color:        "Silver",
		LicensePlate: plate,
		VehicleType:  "economy",
		Capacity:     4,
	}
}

func TestRegisterVehicle(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	driver := e.register(t, "driver@example.com", models.UserTypeDriver)

	vehicle, err := e.svc.Vehicle().Register(ctx, driver.actor(t, e), vehicleInput("ABC 123"))
	require.NoError(t, err)
	assert.Equal(t, driver.user.ID, vehicle.DriverID)
	assert.Equal(t, models.VehicleEconomy, vehicle.VehicleType)

	// The first vehicle becomes the driver's primary one.
	d := driver.actor(t, e)
	require.NotNil(t, d.VehicleID)
	assert.Equal(t, vehicle.ID, *d.VehicleID)
}

func TestRegisterVehicleDuplicatePlate(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	first := e.register(t, "first@example.com", models.UserTypeDriver)
	second := e.register(t, "second@example.com", models.UserTypeDriver)

	_, err := e.svc.Vehicle().Register(ctx, first.actor(t, e), vehicleInput("ABC 123"))
	require.NoError(t, err)

	_, err = e.svc.Vehicle().Register(ctx, second.actor(t, e), vehicleInput("ABC 123"))
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestRegisterVehicleValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	driver := e.register(t, "driver@example.com", models.UserTypeDriver)
	rider := e.register(t, "rider@example.com", models.UserTypePassenger)

	_, err := e.svc.Vehicle().Register(ctx, rider.actor(t, e), vehicleInput("XYZ 789"))
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	bad := vehicleInput("XYZ 789")
	bad.VehicleType = "SPACESHIP"
	_, err = e.svc.Vehicle().Register(ctx, driver.actor(t, e), bad)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	bad = vehicleInput("XYZ 789")
	bad.Year = 1800
	_, err = e.svc.Vehicle().Register(ctx, driver.actor(t, e), bad)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestUpdateVehicleOwnership(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	owner := e.register(t, "owner@example.com", models.UserTypeDriver)
	other := e.register(t, "other@example.com", models.UserTypeDriver)

	vehicle, err := e.svc.Vehicle().Register(ctx, owner.actor(t, e), vehicleInput("ABC 123"))
	require.NoError(t, err)

	color := "Black"
	updated, err := e.svc.Vehicle().Update(ctx, owner.actor(t, e), vehicle.ID, service.VehicleUpdate{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Black", updated.Color)
	assert.Equal(t, "Toyota", updated.Make)

	_, err = e.svc.Vehicle().Update(ctx, other.actor(t, e), vehicle.ID, service.VehicleUpdate{Color: &color})
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}

func TestDeletePrimaryVehiclePromotesAnother(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	driver := e.register(t, "driver@example.com", models.UserTypeDriver)

	first, err := e.svc.Vehicle().Register(ctx, driver.actor(t, e), vehicleInput("AAA 111"))
	require.NoError(t, err)
	second, err := e.svc.Vehicle().Register(ctx, driver.actor(t, e), vehicleInput("BBB 222"))
	require.NoError(t, err)

	require.NoError(t, e.svc.Vehicle().Delete(ctx, driver.actor(t, e), first.ID))

	d := driver.actor(t, e)
	require.NotNil(t, d.VehicleID)
	assert.Equal(t, second.ID, *d.VehicleID)

	require.NoError(t, e.svc.Vehicle().Delete(ctx, driver.actor(t, e), second.ID))
	assert.Nil(t, driver.actor(t, e).VehicleID)
}

func TestListVehicles(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	first := e.register(t, "first@example.com", models.UserTypeDriver)
	second := e.register(t, "second@example.com", models.UserTypeDriver)

	_, err := e.svc.Vehicle().Register(ctx, first.actor(t, e), vehicleInput("AAA 111"))
	require.NoError(t, err)
	_, err = e.svc.Vehicle().Register(ctx, second.actor(t, e), vehicleInput("BBB 222"))
	require.NoError(t, err)

	own, err := e.svc.Vehicle().List(ctx, first.actor(t, e))
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := e.svc.Vehicle().List(ctx, admin.actor(t, e))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindByPlate(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	admin := e.register(t, "admin@example.com", models.UserTypeAdmin)
	driver := e.register(t, "driver@example.com", models.UserTypeDriver)

	_, err := e.svc.Vehicle().Register(ctx, driver.actor(t, e), vehicleInput("ABC 123"))
	require.NoError(t, err)

	// Normalized match: case and spacing do not matter.
	matches, err := e.svc.Vehicle().FindByPlate(ctx, admin.actor(t, e), "abc123")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ABC 123", matches[0].Vehicle.LicensePlate)
	require.NotNil(t, matches[0].Driver)
	assert.Equal(t, "driver@example.com", matches[0].Driver.Email)
	assert.Empty(t, matches[0].Driver.Password)

	// Partial plates match too.
	matches, err = e.svc.Vehicle().FindByPlate(ctx, admin.actor(t, e), "ABC")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	_, err = e.svc.Vehicle().FindByPlate(ctx, admin.actor(t, e), "ZZZ 999")
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	_, err = e.svc.Vehicle().FindByPlate(ctx, driver.actor(t, e), "ABC")
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
}
