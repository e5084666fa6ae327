package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/panel"
	"github.com/slm-1056101/raven/internal/view"
)

func newSuperAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "superadmin",
		Short: "Platform console",
	}
	cmd.AddCommand(
		newSuperAdminCompaniesCmd(),
		newSuperAdminUsersCmd(),
	)
	return cmd
}

func superAdminApp(cmd *cobra.Command) (*app, *panel.SuperAdmin, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	if err := a.restore(cmd.Context(), view.SuperAdmin); err != nil {
		return nil, nil, err
	}
	user := a.store.CurrentUser()
	if user == nil || user.Role != domain.RoleSuperAdmin {
		return nil, nil, fmt.Errorf("super admin access required")
	}
	return a, panel.NewSuperAdmin(a.store, a.validate), nil
}

func newSuperAdminCompaniesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "Manage tenant companies",
	}

	var in panel.CompanyInput

	bindCompanyFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&in.Name, "name", "", "company name")
		c.Flags().StringVar(&in.Logo, "logo", "", "company logo")
		c.Flags().StringVar(&in.Description, "description", "", "description")
		c.Flags().StringVar(&in.PrimaryColor, "primary-color", "", "brand color")
		c.Flags().StringVar(&in.SubscriptionPlan, "plan", "", "subscription plan")
		c.Flags().IntVar(&in.MaxPlots, "max-plots", 0, "plot quota")
		c.Flags().StringVar(&in.ContactEmail, "contact-email", "", "contact email")
		c.Flags().StringVar(&in.ContactPhone, "contact-phone", "", "contact phone")
		c.Flags().StringVar(&in.Address, "address", "", "postal address")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := superAdminApp(cmd)
			if err != nil {
				return err
			}
			for _, c := range a.store.Companies() {
				fmt.Printf("%s  %s %-28s %s\n", c.ID, c.Logo, c.Name, c.Status)
			}
			return nil
		},
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Register a tenant (starts Pending)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sa, err := superAdminApp(cmd)
			if err != nil {
				return err
			}
			c, err := sa.RegisterCompany(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s), status %s\n", c.Name, c.ID, c.Status)
			return nil
		},
	}
	bindCompanyFlags(register)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sa, err := superAdminApp(cmd)
			if err != nil {
				return err
			}
			c, err := sa.UpdateCompany(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	bindCompanyFlags(update)

	statusCmd := func(use, short string, run func(*panel.SuperAdmin, *cobra.Command, string) (*domain.Company, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, sa, err := superAdminApp(cmd)
				if err != nil {
					return err
				}
				c, err := run(sa, cmd, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", c.Name, c.Status)
				return nil
			},
		}
	}

	approve := statusCmd("approve", "Approve a pending tenant", func(sa *panel.SuperAdmin, cmd *cobra.Command, id string) (*domain.Company, error) {
		return sa.ApproveCompany(cmd.Context(), id)
	})
	deactivate := statusCmd("deactivate", "Deactivate a tenant", func(sa *panel.SuperAdmin, cmd *cobra.Command, id string) (*domain.Company, error) {
		return sa.DeactivateCompany(cmd.Context(), id)
	})
	reactivate := statusCmd("reactivate", "Reactivate a tenant", func(sa *panel.SuperAdmin, cmd *cobra.Command, id string) (*domain.Company, error) {
		return sa.ReactivateCompany(cmd.Context(), id)
	})

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sa, err := superAdminApp(cmd)
			if err != nil {
				return err
			}
			if err := sa.DeleteCompany(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, register, update, approve, deactivate, reactivate, del)
	return cmd
}

func newSuperAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all accounts",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, _, err := superAdminApp(cmd)
				if err != nil {
					return err
				}
				for _, u := range a.store.Users() {
					fmt.Printf("%s  %-24s %-28s %-10s %s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-role <id> <role>",
			Short: "Change an account's role",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, sa, err := superAdminApp(cmd)
				if err != nil {
					return err
				}
				u, err := sa.SetUserRole(cmd.Context(), args[0], domain.Role(args[1]))
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", u.Email, u.Role)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-status <id> <status>",
			Short: "Activate or deactivate an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, sa, err := superAdminApp(cmd)
				if err != nil {
					return err
				}
				u, err := sa.SetUserStatus(cmd.Context(), args[0], domain.UserStatus(args[1]))
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", u.Email, u.Status)
				return nil
			},
		},
	)
	return cmd
}
