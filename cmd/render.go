package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/conneroisu/manualkit/internal/console"
	"github.com/conneroisu/manualkit/internal/errors"
)

var renderCmd = &cobra.Command{
	Use:   "render SECTION_ID",
	Short: "Render one section as HTML or terminal text",
	Long: `Render a single section to standard output.

The html format writes the complete page that build would write. The term
format renders the section for the terminal; colors are used only when
standard output is a terminal.

Examples:
  manualkit render sec-6-3                 # Full HTML page
  manualkit render sec-6-3 --format term   # Read it in the terminal`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderFormat string
	renderWidth  int
)

func init() {
	rootCmd.AddCommand(renderCmd)

	addFormatFlag(renderCmd, &renderFormat, "html", "term")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", console.DefaultWidth, "Wrap width for term output")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openManual(cmd)
	if err != nil {
		return err
	}

	section, ok := s.registry().Get(args[0])
	if !ok {
		return errors.NewValidationError(errors.ErrCodeSectionNotFound,
			fmt.Sprintf("section %q not found", args[0]))
	}

	out := cmd.OutOrStdout()
	if renderFormat == "html" {
		return s.htmlRenderer().Page(section).Render(ctx, out)
	}

	r, err := console.New(console.Options{
		Theme:    s.theme,
		Sections: s.registry(),
		Width:    renderWidth,
		Color:    isTerminal(out),
		Logger:   s.logger,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, r.Section(ctx, section))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
