// Package config provides configuration management for manualkit using Viper
// for loading from files, environment variables, and command-line flags.
//
// Configuration is read from .manualkit.yml (or the file named by --config or
// MANUALKIT_CONFIG_FILE). Every key can be overridden from the environment
// with the MANUALKIT_ prefix, e.g. MANUALKIT_OUTPUT_DIR or
// MANUALKIT_LINT_STRICT.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MANUALKIT"

// DefaultMermaidURL is the Mermaid ES module loaded by pages with diagrams.
const DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs"

type Config struct {
	Content ContentConfig `mapstructure:"content" yaml:"content" json:"content"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output" json:"output"`
	Lint    LintConfig    `mapstructure:"lint" yaml:"lint" json:"lint"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search" json:"search"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
}

type ContentConfig struct {
	// Paths may be given as a comma-separated list in the environment.
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`
	// NavigationFile is the optional navigation registry file.
	NavigationFile  string   `mapstructure:"navigation_file" yaml:"navigation_file" json:"navigation_file"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
}

type OutputConfig struct {
	Dir         string `mapstructure:"dir" yaml:"dir" json:"dir"`
	LinkPattern string `mapstructure:"link_pattern" yaml:"link_pattern" json:"link_pattern"`
	Stylesheet  string `mapstructure:"stylesheet" yaml:"stylesheet" json:"stylesheet"`
	Title       string `mapstructure:"title" yaml:"title" json:"title"`
	// MermaidURL may be empty to leave diagrams as source text.
	MermaidURL string `mapstructure:"mermaid_url" yaml:"mermaid_url" json:"mermaid_url"`
	// Workers bounds concurrent page rendering; 0 uses every CPU.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

type LintConfig struct {
	// Strict promotes warnings to errors.
	Strict bool `mapstructure:"strict" yaml:"strict" json:"strict"`
	// Orphans reports sections nothing links to.
	Orphans bool `mapstructure:"orphans" yaml:"orphans" json:"orphans"`
}

type SearchConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit" json:"limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

var defaults = map[string]interface{}{
	"content.paths":            []string{"./manual"},
	"content.navigation_file":  "",
	"content.exclude_patterns": []string{"*.bak", "*.draft.*"},
	"output.dir":               "dist",
	"output.link_pattern":      "%s.html",
	"output.stylesheet":        "manual.css",
	"output.title":             "Manual",
	"output.mermaid_url":       DefaultMermaidURL,
	"output.workers":           0,
	"lint.strict":              false,
	"lint.orphans":             true,
	"search.limit":             10,
	"log.level":                "info",
	"log.format":               "text",
}

// SetDefaults registers every key with its default. Keys must be known to
// Viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// BindEnv enables MANUALKIT_<SECTION>_<KEY> overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateContentConfig(&config.Content); err != nil {
		return fmt.Errorf("content config: %w", err)
	}
	if err := validateOutputConfig(&config.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if config.Search.Limit < 1 {
		return fmt.Errorf("search config: limit must be positive, got %d", config.Search.Limit)
	}
	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log config: format must be text or json, got %q", config.Log.Format)
	}
	return nil
}

func validateContentConfig(config *ContentConfig) error {
	if len(config.Paths) == 0 {
		return fmt.Errorf("at least one content path is required")
	}
	for _, path := range config.Paths {
		if err := validation.ValidatePath(path); err != nil {
			return fmt.Errorf("invalid content path '%s': %w", path, err)
		}
	}
	if config.NavigationFile != "" {
		if err := validation.ValidatePath(config.NavigationFile); err != nil {
			return fmt.Errorf("invalid navigation file: %w", err)
		}
		if err := validation.ValidateFileExtension(config.NavigationFile, []string{".yaml", ".yml", ".toml", ".json"}); err != nil {
			return fmt.Errorf("invalid navigation file: %w", err)
		}
	}
	return nil
}

func validateOutputConfig(config *OutputConfig) error {
	if err := validation.ValidatePath(config.Dir); err != nil {
		return fmt.Errorf("invalid output dir: %w", err)
	}
	if err := validation.ValidateLinkPattern(config.LinkPattern); err != nil {
		return err
	}
	switch {
	case config.Stylesheet == "":
	case strings.Contains(config.Stylesheet, "://"):
		if err := validation.ValidateURL(config.Stylesheet); err != nil {
			return fmt.Errorf("invalid stylesheet: %w", err)
		}
	default:
		if err := validation.ValidatePath(config.Stylesheet); err != nil {
			return fmt.Errorf("invalid stylesheet: %w", err)
		}
	}
	if config.MermaidURL != "" {
		if err := validation.ValidateURL(config.MermaidURL); err != nil {
			return fmt.Errorf("invalid mermaid_url: %w", err)
		}
	}
	if config.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", config.Workers)
	}
	return nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() logging.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Format = c.Log.Format
	return logging.NewLogger(cfg)
}
