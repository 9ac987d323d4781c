package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabcab/service"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Manage saved payment methods",
	}
	cmd.AddCommand(
		newPaymentAddCardCmd(),
		newPaymentAddPaypalCmd(),
		newPaymentListCmd(),
		newPaymentSetDefaultCmd(),
		newPaymentRemoveCmd(),
	)
	return cmd
}

func newPaymentAddCardCmd() *cobra.Command {
	var input service.CardInput

	cmd := &cobra.Command{
		Use:   "add-card",
		Short: "Save a credit card",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			method, err := a.services.Payment().AddCard(cmd.Context(), actor, input)
			if err != nil {
				return err
			}
			fmt.Println("Card saved.")
			printPaymentMethod(method)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Number, "number", "", "card number")
	cmd.Flags().IntVar(&input.ExpiryMonth, "month", 0, "expiry month (1-12)")
	cmd.Flags().IntVar(&input.ExpiryYear, "year", 0, "expiry year")
	cmd.Flags().StringVar(&input.CVV, "cvv", "", "security code")
	cmd.Flags().StringVar(&input.Holder, "holder", "", "cardholder name")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("cvv")
	_ = cmd.MarkFlagRequired("holder")
	return cmd
}

func newPaymentAddPaypalCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "add-paypal",
		Short: "Save a PayPal account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			method, err := a.services.Payment().AddPaypal(cmd.Context(), actor, email)
			if err != nil {
				return err
			}
			fmt.Println("PayPal account saved.")
			printPaymentMethod(method)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "PayPal account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPaymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved payment methods (* marks the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			methods, err := a.services.Payment().List(cmd.Context(), actor)
			if err != nil {
				return err
			}
			if len(methods) == 0 {
				fmt.Println("No payment methods saved.")
				return nil
			}
			for _, m := range methods {
				printPaymentMethod(m)
			}
			return nil
		},
	}
}

func newPaymentSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <method-id>",
		Short: "Make a saved method the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			method, err := a.services.Payment().SetDefault(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			fmt.Println("Default payment method updated.")
			printPaymentMethod(method)
			return nil
		},
	}
}

func newPaymentRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <method-id>",
		Short: "Remove a saved payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.services.Payment().Remove(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Println("Payment method removed.")
			return nil
		},
	}
}
