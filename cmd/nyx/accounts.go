package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/forms"
)

func (c *cli) registerCmd() *cobra.Command {
	var form forms.RegistrationForm
	var birth string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.BirthDate, err = parseDate("birth-date", birth); err != nil {
				return err
			}
			u, err := c.svc.Register(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered %s (%s)\n", u.FullName(), u.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Email, "email", "", "Account email")
	f.StringVar(&form.Password, "password", "", "Password, 5 to 10 characters")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "Password again")
	f.StringVar(&form.FirstName, "first-name", "", "First name")
	f.StringVar(&form.LastName, "last-name", "", "Last name")
	f.StringVar(&birth, "birth-date", "", "Birth date (YYYY-MM-DD)")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s\n", u.FullName())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := c.svc.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := c.svc.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s <%s>\n", u.FullName(), u.Email)
			return nil
		},
	}
}

func (c *cli) accountCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "account", Short: "Manage your account"}
	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account, your events and their participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			if err := c.svc.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Account deleted")
			return nil
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	cmd.AddCommand(del)
	return cmd
}
