package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/panel"
	"github.com/slm-1056101/raven/internal/view"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Company dashboard",
	}
	cmd.AddCommand(
		newAdminPropertiesCmd(),
		newAdminApplicationsCmd(),
		newAdminUsersCmd(),
	)
	return cmd
}

// adminApp restores the session and checks the caller actually landed on
// the admin screen, mirroring the route guard.
func adminApp(cmd *cobra.Command) (*app, *panel.Admin, error) {
	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}
	if err := a.restore(cmd.Context(), view.Admin); err != nil {
		return nil, nil, err
	}
	user := a.store.CurrentUser()
	if user == nil || (user.Role != domain.RoleAdmin && user.Role != domain.RoleSuperAdmin) {
		return nil, nil, fmt.Errorf("admin access required")
	}
	return a, panel.NewAdmin(a.store, a.validate), nil
}

func newAdminPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage company inventory",
	}

	var in panel.PropertyInput
	var propType, propStatus string

	bindPropertyFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&in.Title, "title", "", "listing title")
		c.Flags().StringVar(&in.Description, "description", "", "listing description")
		c.Flags().StringVar(&in.Location, "location", "", "location")
		c.Flags().StringVar(&in.PlotNumber, "plot-number", "", "plot number (land)")
		c.Flags().StringVar(&in.RoomNumber, "room-number", "", "room number (rentals)")
		c.Flags().Float64Var(&in.Price, "price", 0, "price")
		c.Flags().Float64Var(&in.Size, "size", 0, "size in square meters")
		c.Flags().StringVar(&propType, "type", "", "property type")
		c.Flags().StringVar(&propStatus, "status", "", "property status")
		c.Flags().StringVar(&in.ImageURL, "image-url", "", "image URL")
		c.Flags().StringSliceVar(&in.Features, "feature", nil, "feature (repeatable)")
		c.Flags().StringSliceVar(&in.FinancingMethods, "financing-method", nil, "accepted financing method (repeatable)")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the company's inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := adminApp(cmd)
			if err != nil {
				return err
			}
			for _, p := range a.store.CompanyProperties() {
				fmt.Printf("%s  %-24s %-18s %s\n", p.ID, p.Title, p.Type, p.Status)
			}
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Add a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, admin, err := adminApp(cmd)
			if err != nil {
				return err
			}
			in.Type = domain.PropertyType(propType)
			in.Status = domain.PropertyStatus(propStatus)
			p, err := admin.CreateProperty(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", p.Title, p.ID)
			return nil
		},
	}
	bindPropertyFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, admin, err := adminApp(cmd)
			if err != nil {
				return err
			}
			in.Type = domain.PropertyType(propType)
			in.Status = domain.PropertyStatus(propStatus)
			p, err := admin.UpdateProperty(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", p.Title, p.ID)
			return nil
		},
	}
	bindPropertyFlags(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, admin, err := adminApp(cmd)
			if err != nil {
				return err
			}
			if err := admin.DeleteProperty(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func newAdminApplicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Review incoming applications",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the company's applications",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, _, err := adminApp(cmd)
				if err != nil {
					return err
				}
				for _, app := range a.store.CompanyApplications() {
					fmt.Printf("%s  %-28s %-12s %s\n", app.ID, app.ApplicantName, app.Status, app.PropertyID)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "approve <id>",
			Short: "Approve an application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, admin, err := adminApp(cmd)
				if err != nil {
					return err
				}
				app, err := admin.ApproveApplication(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Application %s is now %s\n", app.ID, app.Status)
				return nil
			},
		},
		&cobra.Command{
			Use:   "reject <id>",
			Short: "Reject an application",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, admin, err := adminApp(cmd)
				if err != nil {
					return err
				}
				app, err := admin.RejectApplication(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Application %s is now %s\n", app.ID, app.Status)
				return nil
			},
		},
	)
	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage company members",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List company members",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, _, err := adminApp(cmd)
				if err != nil {
					return err
				}
				for _, u := range a.store.CompanyUsers() {
					fmt.Printf("%s  %-24s %-28s %-10s %s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "activate <id>",
			Short: "Activate an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, admin, err := adminApp(cmd)
				if err != nil {
					return err
				}
				u, err := admin.SetUserStatus(cmd.Context(), args[0], domain.UserStatusActive)
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", u.Email, u.Status)
				return nil
			},
		},
		&cobra.Command{
			Use:   "deactivate <id>",
			Short: "Deactivate an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, admin, err := adminApp(cmd)
				if err != nil {
					return err
				}
				u, err := admin.SetUserStatus(cmd.Context(), args[0], domain.UserStatusInactive)
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
