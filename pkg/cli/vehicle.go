package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabcab/service"
)

func newVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Manage your vehicles",
	}
	cmd.AddCommand(
		newVehicleRegisterCmd(),
		newVehicleListCmd(),
		newVehicleUpdateCmd(),
		newVehicleDeleteCmd(),
	)
	return cmd
}

func newVehicleRegisterCmd() *cobra.Command {
	var input service.VehicleInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a vehicle to your driver account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			vehicle, err := a.services.Vehicle().Register(cmd.Context(), actor, input)
			if err != nil {
				return err
			}
			fmt.Println("Vehicle registered.")
			printVehicle(vehicle)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Make, "make", "", "manufacturer")
	cmd.Flags().StringVar(&input.Model, "model", "", "model")
	cmd.Flags().IntVar(&input.Year, "year", 0, "model year")
	cmd.Flags().StringVar(&input.Color, "color", "", "color")
	cmd.Flags().StringVar(&input.LicensePlate, "plate", "", "license plate")
	cmd.Flags().StringVar(&input.VehicleType, "type", "ECONOMY", "ECONOMY, COMFORT, PREMIUM, SUV or XL")
	cmd.Flags().IntVar(&input.Capacity, "capacity", 4, "passenger capacity")
	_ = cmd.MarkFlagRequired("make")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("color")
	_ = cmd.MarkFlagRequired("plate")
	return cmd
}

func newVehicleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your vehicles (all vehicles for admins)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			vehicles, err := a.services.Vehicle().List(cmd.Context(), actor)
			if err != nil {
				return err
			}
			if len(vehicles) == 0 {
				fmt.Println("No vehicles registered.")
				return nil
			}
			for _, v := range vehicles {
				printVehicle(v)
			}
			return nil
		},
	}
}

func newVehicleUpdateCmd() *cobra.Command {
	var make_, model, color, vehicleType string
	var year, capacity int

	cmd := &cobra.Command{
		Use:   "update <vehicle-id>",
		Short: "Update a vehicle you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			vehicle, err := a.services.Vehicle().Update(cmd.Context(), actor, args[0], service.VehicleUpdate{
				Make:        strPtr(make_),
				Model:       strPtr(model),
				Year:        intPtr(year),
				Color:       strPtr(color),
				VehicleType: strPtr(vehicleType),
				Capacity:    intPtr(capacity),
			})
			if err != nil {
				return err
			}
			fmt.Println("Vehicle updated.")
			printVehicle(vehicle)
			return nil
		},
	}

	cmd.Flags().StringVar(&make_, "make", "", "new manufacturer")
	cmd.Flags().StringVar(&model, "model", "", "new model")
	cmd.Flags().IntVar(&year, "year", 0, "new model year")
	cmd.Flags().StringVar(&color, "color", "", "new color")
	cmd.Flags().StringVar(&vehicleType, "type", "", "new vehicle type")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "new passenger capacity")
	return cmd
}

func newVehicleDeleteCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete <vehicle-id>",
		Short: "Remove a vehicle you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("deleting is irreversible, re-run with --confirm")
			}

			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.services.Vehicle().Delete(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Println("Vehicle deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the deletion")
	return cmd
}
