package cmd

import (
	"strings"

	"github.com/nfrund/gobyauth/cmd/gobyauth-cli/internal/output"
	"github.com/nfrund/gobyauth/internal/config"
	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show the social sign-in providers and their configuration",
	Long: `Loads configuration from .env and the environment and reports, for each
social provider button, whether the in-memory auth client can start its OAuth
flow. With AUTH_CLIENT=remote the providers are configured on the
authentication service instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return output.Write(cmd.OutOrStdout(), outputFormat, providersTable(cfg))
	},
}

func providersTable(cfg config.Provider) output.Table {
	table := output.Table{Header: []string{"NAME", "LABEL", "CONFIGURED", "SCOPES", "REDIRECT"}}
	for _, name := range domain.SocialProviders {
		row := []string{name, domain.ProviderLabel(name), "no", "-", "-"}
		switch {
		case cfg.GetAuthClient() == "remote":
			row[2] = "remote"
		default:
			if p, ok := cfg.GetSocialProvider(name); ok {
				row[2] = "yes"
				row[3] = strings.Join(p.Scopes, ",")
				if p.RedirectURI != "" {
					row[4] = p.RedirectURI
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
