package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/manualkit/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search section text",
	Long: `Search titles, summaries and block text of every section. Title matches
rank above body matches.

Examples:
  manualkit search "review cycle"
  manualkit search calibration --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchLimit int

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", search.DefaultLimit, "Maximum number of results")
	_ = viper.BindPFlag("search.limit", searchCmd.Flags().Lookup("limit"))
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	s, err := openManual(cmd)
	if err != nil {
		return err
	}

	index, err := search.Build(ctx, s.registry(), s.logger)
	if err != nil {
		return err
	}
	defer index.Close()

	query := strings.Join(args, " ")
	hits, err := index.Search(ctx, query, s.cfg.Search.Limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(hits) == 0 {
		fmt.Fprintf(out, "No sections match %q\n", query)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tBREADCRUMB\tSCORE")
	for _, h := range hits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n", h.SectionID, h.Title, h.Breadcrumb, h.Score)
	}
	return w.Flush()
}
