package cmd

import (
	"sort"
	"strings"
	"time"

	"github.com/nfrund/gobyauth/cmd/gobyauth-cli/internal/output"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/server"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP routes registered by the server",
	Long: `Builds the server with the in-memory auth client and prints every route it
registers. Nothing is started and no environment variables are needed.

Examples:
  gobyauth-cli routes
  gobyauth-cli routes --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := routesTable()
		if err != nil {
			return err
		}
		return output.Write(cmd.OutOrStdout(), outputFormat, table)
	},
}

func routesTable() (output.Table, error) {
	cfg := &config.Config{
		SessionSecret: "gobyauth-cli",
		AuthClient:    "memory",
		AuthJWTSecret: "gobyauth-cli",
		SessionTTL:    time.Hour,
		SessionStore:  "memory",
	}
	s, err := server.New(cfg, nil)
	if err != nil {
		return output.Table{}, err
	}
	defer s.Close()
	s.RegisterRoutes()

	routes := server.Routes(s.E)
	sort.Strings(routes)

	table := output.Table{Header: []string{"METHOD", "PATH"}}
	for _, r := range routes {
		method, path, _ := strings.Cut(r, " ")
		table.Rows = append(table.Rows, []string{method, path})
	}
	return table, nil
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
