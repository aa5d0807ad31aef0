// Package cmd provides the command-line interface for manualkit.
//
// Every command is a Cobra command registered on the root command. Commands
// that need content load the configuration, read the manual from the content
// paths and build the section registry before doing their work.
//
// # Available Commands
//
//   - lint: Check content shape, cross-references, diagrams and navigation
//   - build: Lint, then write the static HTML manual
//   - render: Render one section as HTML or for the terminal
//   - list: List the sections of the manual
//   - search: Full-text search over section content
//   - variants: Show the callout variants and rule badges
//   - config: Show or validate the configuration
//   - version: Show version information
//
// # Command Examples
//
//	// Fail on warnings as well as errors
//	manualkit lint --strict
//
//	// Rebuild from scratch into site/
//	manualkit build --output site --clean
//
//	// Read a section in the terminal
//	manualkit render sec-6-3 --format term
//
//	// Machine-readable listing
//	manualkit list --format json
//
// # Configuration Integration
//
// Commands respect configuration from multiple sources in order of precedence:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (MANUALKIT_*)
//  3. Configuration file (.manualkit.yml)
//  4. Default values (lowest priority)
//
// # Error Handling
//
// Content problems are reported as findings with the file, JSON pointer and
// section they concern. lint and build exit non-zero when any finding is an
// error; render degrades a broken block to a visible placeholder instead.
package cmd
