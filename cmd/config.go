package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/manualkit/internal/config"
	"github.com/conneroisu/manualkit/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect manualkit configuration",
	Long: `Inspect manualkit configuration files and settings.

Examples:
  manualkit config show                      # Show the resolved configuration
  manualkit config show --format json        # Show it as JSON
  manualkit config validate                  # Validate .manualkit.yml
  manualkit config validate other.yml        # Validate a specific file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the configuration after loading the config file, applying
MANUALKIT_* environment overrides, flags and defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Validate a configuration file",
	Long: `Validate a manualkit configuration file. Checks value types, paths,
the output link pattern, URLs and the log settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

var configFormat string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	addFormatFlag(configShowCmd, &configFormat, "yaml", "json")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "failed to load config")
	}

	out := cmd.OutOrStdout()
	if configFormat == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	}
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return err
	}
	return encoder.Close()
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	target := ".manualkit.yml"
	if len(args) == 1 {
		target = args[0]
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("configuration file %s: %w", target, err)
	}

	v := viper.New()
	v.SetConfigFile(target)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}
	if _, err := config.LoadFrom(v); err != nil {
		return errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid configuration")
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s\n", target)
	return err
}
