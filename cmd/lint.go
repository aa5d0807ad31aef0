package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/lint"
)

var (
	lintFormat string
	lintStrict bool
)

// lintCmd represents the lint command.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check content files and cross-references",
	Long: `Load every content file and check the manual for problems:

- Content files that do not match the section schema
- Unknown callout variants, enforcement levels and field types
- Related topics and breadcrumbs that point at missing sections
- Navigation registry keys without a section
- Workflow diagrams with syntax errors or undefined nodes
- Sections nothing links to (when lint.orphans is enabled)

The command exits non-zero when an error is found, or any warning with --strict.

Examples:
  manualkit lint                  # Check the configured manual
  manualkit lint --strict         # Treat warnings as errors
  manualkit lint --format json    # Output findings as JSON`,
	RunE: runLintCommand,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	addFormatFlag(lintCmd, &lintFormat, "text", "json")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat warnings as errors")
	_ = viper.BindPFlag("lint.strict", lintCmd.Flags().Lookup("strict"))
}

// LintSummary is the JSON shape of a lint run.
type LintSummary struct {
	Sections int              `json:"sections"`
	Files    int              `json:"files"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Passed   bool             `json:"passed"`
	Findings []errors.Finding `json:"findings"`
}

func runLintCommand(cmd *cobra.Command, args []string) error {
	s, err := openManual(cmd)
	if err != nil {
		return err
	}
	strict := s.cfg.Lint.Strict
	findings := s.lint(commandContext(cmd), strict)

	summary := summarize(s, findings, strict)

	out := cmd.OutOrStdout()
	if lintFormat == "json" {
		err = outputLintJSON(out, summary)
	} else {
		err = outputLintText(out, summary)
	}
	if err != nil {
		return err
	}

	if !summary.Passed {
		return fmt.Errorf("lint failed: %d errors, %d warnings", summary.Errors, summary.Warnings)
	}
	return nil
}

func summarize(s *session, findings *errors.ErrorCollector, strict bool) LintSummary {
	return LintSummary{
		Sections: s.registry().Count(),
		Files:    len(s.loaded.Files),
		Errors:   findings.Count(errors.ErrorSeverityError),
		Warnings: findings.Count(errors.ErrorSeverityWarning),
		Passed:   !lint.Failed(findings, strict),
		Findings: findings.Findings(),
	}
}

func outputLintJSON(w io.Writer, summary LintSummary) error {
	if summary.Findings == nil {
		summary.Findings = []errors.Finding{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func outputLintText(w io.Writer, summary LintSummary) error {
	for _, f := range summary.Findings {
		if _, err := fmt.Fprintln(w, f.Error()); err != nil {
			return err
		}
	}
	if len(summary.Findings) > 0 {
		fmt.Fprintln(w)
	}

	status := "passed"
	if !summary.Passed {
		status = "failed"
	}
	_, err := fmt.Fprintf(w, "Lint %s: %d sections in %d files, %d errors, %d warnings\n",
		status, summary.Sections, summary.Files, summary.Errors, summary.Warnings)
	return err
}
