package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}
	cmd.AddCommand(
		newAdminVerifyDriverCmd(),
		newAdminBanCmd(),
		newAdminUnbanCmd(),
		newAdminListDriversCmd(),
		newAdminDriverRidesCmd(),
		newAdminFindVehicleCmd(),
	)
	return cmd
}

func newAdminVerifyDriverCmd() *cobra.Command {
	var unverify bool

	cmd := &cobra.Command{
		Use:   "verify-driver <email>",
		Short: "Verify (or unverify) a driver account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			driver, err := a.services.Admin().VerifyDriver(cmd.Context(), actor, args[0], !unverify)
			if err != nil {
				return err
			}
			if driver.IsVerified {
				fmt.Printf("Driver %s is now verified.\n", driver.Email)
			} else {
				fmt.Printf("Driver %s is no longer verified.\n", driver.Email)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unverify, "unverify", false, "revoke verification instead")
	return cmd
}

func newAdminBanCmd() *cobra.Command {
	var reason string
	var permanent bool

	cmd := &cobra.Command{
		Use:   "ban <email>",
		Short: "Ban a passenger account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			user, err := a.services.Admin().BanPassenger(cmd.Context(), actor, args[0], reason, permanent)
			if err != nil {
				return err
			}
			fmt.Printf("Passenger %s banned.\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "reason shown to the banned user")
	cmd.Flags().BoolVar(&permanent, "permanent", false, "make the ban permanent")
	return cmd
}

func newAdminUnbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <email>",
		Short: "Lift a passenger ban",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			user, err := a.services.Admin().UnbanPassenger(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Passenger %s unbanned.\n", user.Email)
			return nil
		},
	}
}

func newAdminListDriversCmd() *cobra.Command {
	var verifiedOnly bool

	cmd := &cobra.Command{
		Use:   "list-drivers",
		Short: "List driver accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			drivers, err := a.services.Admin().ListDrivers(cmd.Context(), actor, verifiedOnly)
			if err != nil {
				return err
			}
			if len(drivers) == 0 {
				fmt.Println("No drivers found.")
				return nil
			}
			for _, d := range drivers {
				printUser(d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verifiedOnly, "verified", false, "only verified drivers")
	return cmd
}

func newAdminDriverRidesCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "driver-rides <email>",
		Short: "List a driver's rides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			rides, err := a.services.Admin().DriverRides(cmd.Context(), actor, args[0], status)
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

func newAdminFindVehicleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-vehicle <plate>",
		Short: "Find vehicles by (partial) license plate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			matches, err := a.services.Vehicle().FindByPlate(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			for _, m := range matches {
				printVehicle(m.Vehicle)
				if m.Driver != nil {
					fmt.Printf("  owner:    %s <%s>\n", m.Driver.FullName(), m.Driver.Email)
				}
			}
			return nil
		},
	}
}
