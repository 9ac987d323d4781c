package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabcab/server"
)

func newServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the local JSON store server",
	}
	cmd.AddCommand(
		newServerRunCmd(),
		newServerStartCmd(),
		newServerStopCmd(),
		newServerStatusCmd(),
		newServerResetCmd(),
	)
	return cmd
}

func newServerRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the server in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			doc := server.NewDocument(a.cfg.DBFile)
			return server.Run(doc, a.cfg.ServerHost, a.cfg.ServerPort, a.log)
		},
	}
}

func newServerStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the server in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			mgr := &server.Manager{PIDFile: a.cfg.PIDFile}

			pid, err := mgr.Start("server", "run")
			if err != nil {
				return err
			}
			fmt.Printf("Server started with PID %d on %s\n", pid, a.cfg.ServerURL())
			return nil
		},
	}
}

func newServerStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the background server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			mgr := &server.Manager{PIDFile: a.cfg.PIDFile}

			if err := mgr.Stop(); err != nil {
				return err
			}
			fmt.Println("Server stopped.")
			return nil
		},
	}
}

func newServerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the background server is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			mgr := &server.Manager{PIDFile: a.cfg.PIDFile}

			if pid, alive := mgr.Running(); alive {
				fmt.Printf("Server is running with PID %d on %s\n", pid, a.cfg.ServerURL())
			} else {
				fmt.Println("Server is not running.")
			}
			return nil
		},
	}
}

func newServerResetCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the database, keeping a .bak copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("resetting wipes all data, re-run with --confirm")
			}

			a := newApp()
			doc := server.NewDocument(a.cfg.DBFile)
			if err := doc.Reset(); err != nil {
				return err
			}
			fmt.Printf("Database reset. Previous contents saved to %s.bak\n", a.cfg.DBFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the reset")
	return cmd
}
