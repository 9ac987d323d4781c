package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cabcab/pkg/models"
	"cabcab/service"
)

func newRegisterCmd() *cobra.Command {
	var input service.RegisterInput
	var userType string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			input.UserType = models.UserType(userType)

			user, tok, err := a.services.Auth().Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			if err := a.session.Save(tok); err != nil {
				return fmt.Errorf("account created but session could not be saved: %w", err)
			}

			fmt.Printf("Welcome to CabCab, %s! You are signed in.\n", user.FirstName)
			if user.IsDriver() {
				fmt.Println("Your driver account is pending verification by an admin.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "account email")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&userType, "type", "passenger", "account type: passenger, driver or admin")
	cmd.Flags().StringVar(&input.LicenseNumber, "license", "", "driver's license number (drivers only)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newSigninCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			user, tok, err := a.services.Auth().SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.session.Save(tok); err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", user.FullName(), user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			user, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}
			printUser(user)
			return nil
		},
	}
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update your profile",
	}
	cmd.AddCommand(newProfileUpdateCmd(), newChangePasswordCmd())
	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var firstName, lastName, phone, license string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := a.services.Auth().UpdateProfile(cmd.Context(), actor, service.ProfileUpdate{
				FirstName:     strPtr(firstName),
				LastName:      strPtr(lastName),
				Phone:         strPtr(phone),
				LicenseNumber: strPtr(license),
			})
			if err != nil {
				return err
			}
			fmt.Println("Profile updated.")
			printUser(updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().StringVar(&license, "license", "", "new license number (drivers only)")
	return cmd
}

func newChangePasswordCmd() *cobra.Command {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			actor, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.services.Auth().ChangePassword(cmd.Context(), actor, oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Println("Password changed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password (min 8 characters)")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
