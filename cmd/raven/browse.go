package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the public marketplace",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "companies",
			Short: "List companies",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				companies, err := a.client.PublicCompanies(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range companies {
					fmt.Printf("%s  %s %s  [%s]\n", c.ID, c.Logo, c.Name, c.Status)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "properties",
			Short: "List available inventory",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp()
				if err != nil {
					return err
				}
				properties, err := a.client.PublicProperties(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range properties {
					fmt.Printf("%s  %-24s %-18s %9.0fK  %s\n", p.ID, p.Title, p.Type, p.Price, p.Status)
				}
				return nil
			},
		},
	)
	return cmd
}
