// AngelaMos | 2026
// root.go

package main

import (
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:           "adminctl",
	Short:         "Command-line client for the user-management API",
	Long: `adminctl is the terminal counterpart of the admin panel web UI.

It logs in against the API, stores the issued token locally, attaches it
to every request, and offers user-management commands according to the
role encoded in the token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&serverURL,
		"server",
		"http://localhost:8080",
		"base URL of the user-management API",
	)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(usersCmd)
}

func newClient() (*Client, error) {
	return NewClient(serverURL)
}
