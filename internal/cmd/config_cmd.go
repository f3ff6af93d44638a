package cmd

import (
	"fmt"
	"strconv"

	"github.com/Digital-Shane/trakt-watch/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderConfig(cfg.Redacted()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.configPath()
			if err != nil {
				return err
			}
			if err := config.Set(path, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	})

	return cmd
}

func renderConfig(cfg config.Config) string {
	values := map[string]string{
		"client_id":       cfg.ClientID,
		"api_url":         cfg.APIURL,
		"web_host":        cfg.WebHost,
		"pinned_show":     cfg.PinnedShow,
		"log_level":       cfg.LogLevel,
		"request_timeout": cfg.RequestTimeout,
		"cache_ttl":       cfg.CacheTTL,
		"rate_limit":      strconv.Itoa(cfg.RateLimit),
	}

	rows := make([][]string, 0, len(config.Keys))
	for _, key := range config.Keys {
		rows = append(rows, []string{key, values[key]})
	}
	return renderTable([]string{"Key", "Value"}, rows)
}
