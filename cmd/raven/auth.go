package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slm-1056101/raven/internal/api"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			tokens, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			a.store.SetAuthToken(tokens.Access)

			if err := a.store.Rehydrate(cmd.Context()); err != nil {
				return err
			}

			user := a.store.CurrentUser()
			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
			fmt.Printf("View: %s\n", a.store.CurrentView())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd() *cobra.Command {
	var req api.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a client account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			resp, err := a.client.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.store.SetAuthToken(resp.Access)
			if err := a.store.Rehydrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Account created for %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringSliceVar(&req.CompanyIDs, "company", nil, "company id to join (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.store.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.store.Rehydrate(cmd.Context()); err != nil {
				return err
			}
			user := a.store.CurrentUser()
			if user == nil {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s> role=%s", user.Name, user.Email, user.Role)
			if company := a.store.CurrentCompany(); company != nil {
				fmt.Printf(" company=%s", company.Name)
			}
			fmt.Println()
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe backend liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}
