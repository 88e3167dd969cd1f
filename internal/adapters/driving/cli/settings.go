package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	coreservices "github.com/custodia-labs/finderbridge/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change configuration",
	Long: `Show the effective configuration, or change one key in config.toml.

Keys use the dotted form of their TOML table, for example connection.project
or import.load_logs.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change one setting",
	Long: `Change one setting and save config.toml.

The value is checked against the key's type. Leave out the value of
connection.password to be prompted for it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := requireConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Settings (%s)\n", store.Path())
	table := ""
	for _, v := range coreservices.DescribeSettings(store) {
		section, name, _ := strings.Cut(v.Key, ".")
		if section != table {
			cmd.Println()
			cmd.Printf("[%s]\n", section)
			table = section
		}
		value := v.Value
		if value == "" {
			value = "(not set)"
		}
		if !v.Configured && v.Value != "" {
			value += " (default)"
		}
		cmd.Printf("  %s: %s\n", name, value)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	k, ok := coreservices.LookupSettingKey(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	var raw string
	switch {
	case len(args) == 2:
		raw = args[1]
	case k.Secret:
		value, ok, err := passwordPrompt(cmd.OutOrStdout(), fmt.Sprintf("%s: ", key))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s needs a value when stdin is not a terminal", key)
		}
		raw = value
	default:
		return errors.New("missing value")
	}

	store, err := requireConfig()
	if err != nil {
		return err
	}
	if err := coreservices.SetSetting(store, key, raw); err != nil {
		return err
	}

	if k.Secret {
		cmd.Printf("Saved %s\n", key)
		return nil
	}
	v, _ := store.Get(key)
	cmd.Printf("Saved %s = %v\n", key, v)
	return nil
}
