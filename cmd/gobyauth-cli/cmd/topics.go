package cmd

import (
	"github.com/nfrund/gobyauth/cmd/gobyauth-cli/internal/output"
	"github.com/nfrund/gobyauth/internal/events"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the auth event topics published on the bus",
	Long: `Lists the topics the server publishes auth outcomes on. The audit
subscriber logs every one of them.

Examples:
  gobyauth-cli topics
  gobyauth-cli topics --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Write(cmd.OutOrStdout(), outputFormat, topicsTable())
	},
}

func topicsTable() output.Table {
	table := output.Table{Header: []string{"NAME", "DESCRIPTION"}}
	for _, t := range events.Topics() {
		table.Rows = append(table.Rows, []string{t.Name, t.Description})
	}
	return table
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
