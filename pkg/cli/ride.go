package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabcab/service"
)

func newRideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ride",
		Short: "Request and manage your rides",
	}
	cmd.AddCommand(
		newRideRequestCmd(),
		newRideListCmd(),
		newRideStatusCmd(),
		newRideCancelCmd(),
		newRideRateCmd(),
	)
	return cmd
}

func newRideRequestCmd() *cobra.Command {
	var pickup, dropoff service.AddressInput

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a ride between two addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			details, err := a.services.Ride().Request(cmd.Context(), actor, pickup, dropoff)
			if err != nil {
				return err
			}

			fmt.Println("Ride requested. Waiting for a driver to accept.")
			printRideDetails(details)
			return nil
		},
	}

	cmd.Flags().StringVar(&pickup.Address, "from", "", "pickup street address")
	cmd.Flags().StringVar(&pickup.City, "from-city", "", "pickup city")
	cmd.Flags().StringVar(&pickup.State, "from-state", "", "pickup state")
	cmd.Flags().StringVar(&pickup.PostalCode, "from-zip", "", "pickup postal code")
	cmd.Flags().StringVar(&pickup.Country, "from-country", "USA", "pickup country")
	cmd.Flags().StringVar(&dropoff.Address, "to", "", "dropoff street address")
	cmd.Flags().StringVar(&dropoff.City, "to-city", "", "dropoff city")
	cmd.Flags().StringVar(&dropoff.State, "to-state", "", "dropoff state")
	cmd.Flags().StringVar(&dropoff.PostalCode, "to-zip", "", "dropoff postal code")
	cmd.Flags().StringVar(&dropoff.Country, "to-country", "USA", "dropoff country")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newRideListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your rides, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			rides, err := a.services.Ride().ListForPassenger(cmd.Context(), actor, status)
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

	cmd.Flags().StringVar(&status, "status", "", "filter by status (REQUESTED, ACCEPTED, IN_PROGRESS, COMPLETED, CANCELLED)")
	return cmd
}

func newRideStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <ride-id>",
		Short: "Show the full details of one ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			details, err := a.services.Ride().Get(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			printRideDetails(details)
			return nil
		},
	}
}

func newRideCancelCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "cancel <ride-id>",
		Short: "Cancel a requested or accepted ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("cancelling is irreversible, re-run with --confirm")
			}

			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			ride, err := a.services.Ride().Cancel(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Ride cancelled.")
			printRide(ride)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the cancellation")
	return cmd
}

func newRideRateCmd() *cobra.Command {
	var rating int
	var feedback string

	cmd := &cobra.Command{
		Use:   "rate <ride-id>",
		Short: "Rate a completed ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			ride, err := a.services.Ride().Rate(cmd.Context(), actor, args[0], rating, feedback)
			if err != nil {
				return err
			}
			fmt.Println("Thanks for your feedback!")
			printRide(ride)
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "stars, 1 to 5")
	cmd.Flags().StringVar(&feedback, "feedback", "", "optional written feedback")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}
