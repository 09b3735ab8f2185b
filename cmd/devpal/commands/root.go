// Package commands implements the devpal CLI: authentication, profile and
// notification operations against the remote API with the local cache
// underneath.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagAPI    string
	flagDB     string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "devpal",
		Short:         "devpal client: login, profile and notifications with offline cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to JSON config file")
	cmd.PersistentFlags().StringVarP(&flagAPI, "api", "a", "", "API base URL (overrides config)")
	cmd.PersistentFlags().StringVarP(&flagDB, "db", "d", "", "path to local cache database (overrides config)")

	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newForgotPasswordCmd(),
		newProfileCmd(),
		newNotificationsCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
