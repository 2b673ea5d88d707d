// Package configcmder provides the config command for managing persistent
// faultline configuration stored in the .faultline/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent faultline configuration.

Configuration is stored as config.toml in the .faultline/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  api.listen,
  rules.forward_path, rules.backward_path,
  client.api_target

Use subcommands to get, set, or list configuration values:
  faultline config set <key> <value>    Set a configuration value
  faultline config get <key>            Get a configuration value
  faultline config list                 List all configuration values

Examples:
  faultline config set api.listen :9090
  faultline config set rules.backward_path ./rules/backward.yaml
  faultline config get api.listen
  faultline config list`

const configShortDesc string = "Manage persistent faultline configuration"

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
