// Package cmd provides the command-line interface for manualkit with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --log-level, command flags) - highest priority
//	2. Individual environment variables (MANUALKIT_OUTPUT_DIR, etc.)
//	3. Configuration file (.manualkit.yml, --config or MANUALKIT_CONFIG_FILE)
//	4. Built-in defaults - lowest priority
//
// Environment Variables:
//
//	MANUALKIT_CONFIG_FILE: Path to custom configuration file
//	MANUALKIT_CONTENT_PATHS: Comma-separated content directories
//	MANUALKIT_OUTPUT_DIR: Override the build output directory
//	MANUALKIT_LINT_STRICT: Promote lint warnings to errors
//	And every other key following the MANUALKIT_<SECTION>_<KEY> pattern
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/manualkit/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "manualkit",
	Short: "Render and cross-check a structured product manual",
	Long: `manualkit turns a manual written as YAML, TOML or JSON section files into
HTML pages or terminal output, and checks that every cross-reference in it
resolves.

Key Features:
  • Callouts, field reference tables, business rules and step-by-step guides
  • Workflow diagrams validated before they reach Mermaid
  • Breadcrumbs and related topics checked against the section registry
  • Static site build that only rewrites changed pages
  • Full-text search over section content

Quick Start:
  manualkit lint                  Check content and cross-references
  manualkit build                 Write the HTML manual
  manualkit render sec-6-3        Show one section in the terminal
  manualkit list                  List all sections`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .manualkit.yml, can also use MANUALKIT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig points Viper at the configuration file and enables environment
// overrides.
//
// Configuration file priority (highest to lowest):
//  1. --config flag
//  2. MANUALKIT_CONFIG_FILE environment variable
//  3. .manualkit.yml in the current directory
//
// A missing default file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("MANUALKIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".manualkit")
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
		fmt.Fprintln(os.Stderr, "Warning: failed to read config file:", err)
	}
}
