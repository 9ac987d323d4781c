// Package cli wires the cabcab commands together. Every command loads
// config, builds the service layer over the HTTP JSON store, and
// resolves the saved session token into an acting user when required.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cabcab/config"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/pkg/session"
	"cabcab/pkg/token"
	"cabcab/service"
	"cabcab/storage/jsonstore"
)

type app struct {
	cfg      config.Config
	log      logger.ILogger
	session  *session.Store
	services service.IServiceManager
}

func newApp() *app {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	stg := jsonstore.New(cfg.ServerURL(), log)
	tokens := token.NewManager(cfg.JWTSecret)

	return &app{
		cfg:      cfg,
		log:      log,
		session:  session.NewStore(cfg.HomeDir),
		services: service.New(stg, tokens, log),
	}
}

// actor resolves the saved token into the signed-in user.
func (a *app) actor(ctx context.Context) (*models.User, error) {
	return a.services.Auth().Authenticate(ctx, a.session.Load())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cabcab",
		Short:         "CabCab is a ride-hailing client backed by a local mock server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRegisterCmd(),
		newSigninCmd(),
		newSignoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newRideCmd(),
		newDriverCmd(),
		newVehicleCmd(),
		newAdminCmd(),
		newPaymentCmd(),
		newServerCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
