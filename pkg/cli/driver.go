package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDriverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driver",
		Short: "Driver-side ride workflow",
	}
	cmd.AddCommand(
		newDriverAvailabilityCmd(),
		newDriverAvailableRidesCmd(),
		newDriverRidesCmd(),
		newDriverAcceptCmd(),
		newDriverStartCmd(),
		newDriverCompleteCmd(),
	)
	return cmd
}

func newDriverAvailabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "availability <on|off>",
		Short:     "Go on or off the market for ride requests",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			available := args[0] == "on"

			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := a.services.Auth().SetAvailability(cmd.Context(), actor, available)
			if err != nil {
				return err
			}
			if updated.IsAvailable {
				fmt.Println("You are now available for ride requests.")
			} else {
				fmt.Println("You are no longer taking ride requests.")
			}
			return nil
		},
	}
}

func newDriverAvailableRidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List open ride requests, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			rides, err := a.services.Ride().AvailableRides(cmd.Context(), actor)
			if err != nil {
				return err
			}
			if len(rides) == 0 {
				fmt.Println("No open ride requests right now.")
				return nil
			}
			for _, d := range rides {
				printRideDetails(d)
			}
			return nil
		},
	}
}

func newDriverRidesCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "rides",
		Short: "List rides assigned to you, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			rides, err := a.services.Ride().ListForDriver(cmd.Context(), actor, status)
			if err != nil {
				return err
			}
			if len(rides) == 0 {
				fmt.Println("No rides found.")
				return nil
			}
			for _, r := range rides {
				printRide(r)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func newDriverAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <ride-id>",
		Short: "Accept an open ride request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			details, err := a.services.Ride().Accept(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Ride accepted. Head to the pickup address.")
			printRideDetails(details)
			return nil
		},
	}
}

func newDriverStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <ride-id>",
		Short: "Start an accepted ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			ride, err := a.services.Ride().Start(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Ride started.")
			printRide(ride)
			return nil
		},
	}
}

func newDriverCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <ride-id>",
		Short: "Complete a ride in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			ride, err := a.services.Ride().Complete(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Ride completed. You are available again.")
			printRide(ride)
			return nil
		},
	}
}
