package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kindlinghq/kindling/internal/portal/app"
	"github.com/spf13/cobra"
)

// application is built once in the root PersistentPreRun and shared by all
// subcommands.
var application *app.Application

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Kindling portal - terminal client for the starter stack",
	Long: `The portal drives the Kindling starter stack from a terminal: phone
sign-in against the identity provider, form submissions to the compute
service, and payload forwarding to the configured remote endpoint.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		application = app.New(app.LoadConfig())
		application.Start()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func main() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(federatedCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(signoutCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
