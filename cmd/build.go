package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/manualkit/internal/build"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Lint the manual and write it as static HTML",
	Long: `Lint the manual and, when it passes, write one HTML page per section plus
an index page and the stylesheet to the output directory.

Pages whose content has not changed since the last build are not rewritten,
and pages of removed sections are deleted.

Examples:
  manualkit build                   # Build into output.dir
  manualkit build --output site     # Build to a specific output directory
  manualkit build --clean           # Remove the output directory first`,
	RunE: runBuild,
}

var (
	buildOutput string
	buildClean  bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Remove the output directory before building")
	_ = viper.BindPFlag("output.dir", buildCmd.Flags().Lookup("output"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	ctx := commandContext(cmd)

	s, err := openManual(cmd)
	if err != nil {
		return err
	}

	summary := summarize(s, s.lint(ctx, s.cfg.Lint.Strict), s.cfg.Lint.Strict)
	if !summary.Passed {
		if err := outputLintText(cmd.ErrOrStderr(), summary); err != nil {
			return err
		}
		return fmt.Errorf("build aborted: content has lint errors")
	}

	generator := build.NewStaticSiteGenerator(s.htmlRenderer(), s.registry(), build.Options{
		OutputDir:   s.cfg.Output.Dir,
		LinkPattern: s.cfg.Output.LinkPattern,
		Clean:       buildClean,
		Workers:     s.cfg.Output.Workers,
	}, s.logger)

	result, err := generator.Generate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d sections into %s in %v (%d written, %d unchanged, %d removed)\n",
		result.Pages, result.OutputDir, time.Since(startTime).Round(time.Millisecond),
		len(result.Written), len(result.Unchanged), len(result.Removed))
	return nil
}
