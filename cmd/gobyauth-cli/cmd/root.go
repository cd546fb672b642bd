package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var outputFormat string

var rootCmd = &cobra.Command{
	Use:   "gobyauth-cli",
	Short: "Goby Auth CLI tool",
	Long: `gobyauth-cli inspects a Goby Auth deployment without starting the server.

Available commands:
  version      Print the CLI version
  routes       List the HTTP routes the server registers
  providers    Show the social sign-in providers and whether they are configured
  topics       List the auth event topics published on the bus

Use "gobyauth-cli [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")
}
