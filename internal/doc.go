// Package internal contains the core implementation packages for manualkit.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: Sections, blocks and the closed variant and enforcement enums
//   - theme: Labels, glyphs and style classes for every variant
//   - content: Loading YAML, TOML and JSON sections against a JSON Schema
//   - registry: Section lookup, navigation paths, backlinks and orphans
//   - diagram: The workflow diagram grammar and its parser
//   - lint: Cross-reference, navigation and diagram checks over a registry
//   - renderer: HTML rendering of every block as templ components
//   - console: Terminal rendering of the same blocks
//   - search: In-memory full-text index over section text
//   - build: Static site generation with a digest manifest
//   - config: Configuration loading and validation
//   - errors: Structured errors and collected findings
//   - logging: Structured logging over log/slog
//
// # Inter-Package Communication
//
//   - content produces a registry and a set of findings
//   - lint, renderer, console, search and build consume the registry
//   - renderer and console resolve cross-references through the registry
//     and never fail a section because of a single broken block
//
// For detailed documentation, see the individual package documentation.
package internal
