package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vimbridge/internal/config"
	"github.com/zjrosen/vimbridge/internal/paths"
)

var (
	configInitForce bool
	configInitLocal bool
)

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write the default config file",
	Long: `Write a commented default config file.

The file goes to --config when given, .vimbridge/config.yaml with --local,
and ~/.config/vimbridge/config.yaml otherwise. An existing file is kept
unless --force is set.`,
	Args:              cobra.NoArgs,
	// A broken config must not block writing a fresh one.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configTarget()
		if configInitLocal && cfgFile == "" {
			path = paths.LocalConfigFile()
		}
		if err := config.WriteDefaultConfig(path, configInitForce); err != nil {
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "config:set KEY VALUE",
	Short: "Set one config value",
	Long: `Set one value in the config file in use, keeping its comments.

Keys are dotted paths, for example hook.enabled or host.placeholder.
Values are parsed as YAML scalars.

Examples:
  vimbridge config:set watch_rc true
  vimbridge config:set hook.path ~/bin/mode-changed`,
	Args:              cobra.ExactArgs(2),
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = configTarget()
		}
		if err := config.Set(path, args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %s\n", path, args[0], args[1])
		return nil
	},
}

// configTarget is --config or the user config file.
func configTarget() string {
	if cfgFile != "" {
		return cfgFile
	}
	return paths.ConfigFile()
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&configInitLocal, "local", false, "write .vimbridge/config.yaml in the current directory")
	rootCmd.AddCommand(configInitCmd, configSetCmd)
}
