package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup [name] [email]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := openSession()
		if err != nil {
			return err
		}
		defer vault.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := mgr.Signup(args[0], args[1], password)
		if err != nil {
			return err
		}
		fmt.Printf("Account created for %s. Run \"taskdeck login %s\" to sign in.\n", user.Email, user.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and remember the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := openSession()
		if err != nil {
			return err
		}
		defer vault.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := mgr.Login(args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s.\n", user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := openSession()
		if err != nil {
			return err
		}
		defer vault.Close()

		if err := mgr.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Request a password reset code by email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := openSession()
		if err != nil {
			return err
		}
		defer vault.Close()

		message, err := mgr.Client().ForgotPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [email] [otp]",
	Short: "Set a new password using the emailed code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, vault, err := openSession()
		if err != nil {
			return err
		}
		defer vault.Close()

		password, err := readPassword("New password: ")
		if err != nil {
			return err
		}

		message, err := mgr.Client().ResetPassword(args[0], args[1], password)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}
