// Package configcmder provides the config command for managing persistent
// marquee configuration stored in the .marquee/ directory.
package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marquee/pkg/config"
)

const configLongDesc string = `Manage persistent marquee configuration.

Configuration is stored as config.toml in the .marquee/ directory and provides
default values for command flags. MARQUEE_* environment variables override
file values, and CLI flags always take precedence over both.

Keys use dotted notation matching the TOML section structure:
  catalog.provider, catalog.path, catalog.dsn, catalog.table,
  api.listen, client.api_target,
  recommend.top_n, recommend.seed, recommend.lazy,
  log.json, log.file

Use subcommands to get, set, or list configuration values:
  marquee config set <key> <value>    Set a configuration value
  marquee config get <key>            Get a configuration value
  marquee config list                 List all configuration values

Examples:
  marquee config set catalog.path ~/movies.csv
  marquee config set recommend.top_n 8
  marquee config get catalog.provider
  marquee config list`

const configShortDesc string = "Manage persistent marquee configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validateKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
