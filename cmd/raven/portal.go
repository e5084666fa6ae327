package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slm-1056101/raven/internal/panel"
	"github.com/slm-1056101/raven/internal/view"
)

// newPortalCmd is the signed-in applicant's surface.
func newPortalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Client portal",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "applications",
			Short: "List your applications",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				if err := a.restore(cmd.Context(), view.Client); err != nil {
					return err
				}
				portal := panel.NewClientPortal(a.store)
				entries, err := portal.MyApplications()
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Printf("%s  %-28s %s\n", e.Application.ID, e.PropertyTitle(), e.Application.Status)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "select-company <id>",
			Short: "Switch the active company",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				if err := a.restore(cmd.Context(), view.CompanySelection); err != nil {
					return err
				}
				portal := panel.NewClientPortal(a.store)
				if err := portal.SelectCompany(cmd.Context(), args[0]); err != nil {
					return err
				}
				if company := a.store.CurrentCompany(); company != nil {
					fmt.Printf("Active company: %s\n", company.Name)
				}
				return nil
			},
		},
	)
	return cmd
}
