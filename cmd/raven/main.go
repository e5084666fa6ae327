// Command raven is the terminal frontend for the raven property-management
// platform: marketplace browsing, the application wizard, and the admin and
// super-admin consoles, all against the REST backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "raven",
		Short:         "Multi-tenant property management client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newHealthCmd(),
		newBrowseCmd(),
		newApplyCmd(),
		newPortalCmd(),
		newAdminCmd(),
		newSuperAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
