package service_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/pkg/token"
	"cabcab/server"
	"cabcab/service"
	"cabcab/storage"
	"cabcab/storage/jsonstore"
)

// env runs the whole stack for one test: a JSON store server on a
// throwaway database file, the HTTP storage client over it, and the
// services on top.
type env struct {
	svc service.IServiceManager
	stg storage.IStorage
}

func newEnv(t *testing.T) *env {
	t.Helper()

	doc := server.NewDocument(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, doc.Init())

	ts := httptest.NewServer(server.NewRouter(doc, logger.Nop()))
	t.Cleanup(ts.Close)

	stg := jsonstore.New(ts.URL, logger.Nop())
	return &env{
		svc: service.New(stg, token.NewManager("test-secret"), logger.Nop()),
		stg: stg,
	}
}

// account holds a registered user and the token to re-resolve them
// after another actor has modified their record.
type account struct {
	user  *models.User
	token string
}

// actor returns the account's current server-side state.
func (a account) actor(t *testing.T, e *env) *models.User {
	t.Helper()
	user, err := e.svc.Auth().Authenticate(context.Background(), a.token)
	require.NoError(t, err)
	return user
}

func (e *env) register(t *testing.T, email string, userType models.UserType) account {
	t.Helper()

	input := service.RegisterInput{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
		Phone:     "5550100",
		UserType:  userType,
	}
	if userType == models.UserTypeDriver {
		input.LicenseNumber = "DL-" + email
	}

	user, tok, err := e.svc.Auth().Register(context.Background(), input)
	require.NoError(t, err)
	return account{user: user, token: tok}
}

// readyDriver registers a driver, verifies them through an admin, and
// puts them on the market.
func (e *env) readyDriver(t *testing.T, admin account, email string) account {
	t.Helper()
	ctx := context.Background()

	driver := e.register(t, email, models.UserTypeDriver)

	_, err := e.svc.Admin().VerifyDriver(ctx, admin.actor(t, e), email, true)
	require.NoError(t, err)

	_, err = e.svc.Auth().SetAvailability(ctx, driver.actor(t, e), true)
	require.NoError(t, err)
	return driver
}

func (e *env) requestRide(t *testing.T, passenger account) *service.RideDetails {
	t.Helper()

	details, err := e.svc.Ride().Request(context.Background(), passenger.actor(t, e),
		service.AddressInput{
			Address: "123 Main St",
			City:    "New York", State: "NY", Country: "USA",
		},
		service.AddressInput{
			Address: "500 Broadway",
			City:    "New York", State: "NY", Country: "USA",
		},
	)
	require.NoError(t, err)
	return details
}
