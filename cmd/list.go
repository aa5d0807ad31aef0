package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all sections of the manual",
	Long: `List every section with its breadcrumb, source file and the number of
sections linking to it.

Examples:
  manualkit list                    # List all sections in table format
  manualkit list -f json            # Output as JSON (short flag)
  manualkit list --format yaml      # Output as YAML`,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	addFormatFlag(listCmd, &listFormat, "table", "json", "yaml")
}

// SectionEntry is one listed section.
type SectionEntry struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Breadcrumb []string `json:"breadcrumb,omitempty" yaml:"breadcrumb,omitempty"`
	Source     string   `json:"source" yaml:"source"`
	Blocks     int      `json:"blocks" yaml:"blocks"`
	Links      []string `json:"links,omitempty" yaml:"links,omitempty"`
	Backlinks  []string `json:"backlinks,omitempty" yaml:"backlinks,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openManual(cmd)
	if err != nil {
		return err
	}

	reg := s.registry()
	links := reg.Links()
	entries := make([]SectionEntry, 0, reg.Count())
	for _, section := range reg.All() {
		entries = append(entries, SectionEntry{
			ID:         section.ID,
			Title:      section.Title,
			Breadcrumb: reg.Breadcrumb(section.ID),
			Source:     section.Source,
			Blocks:     len(section.Blocks),
			Links:      links.Outgoing(section.ID),
			Backlinks:  links.Backlinks(section.ID),
		})
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		return outputListJSON(out, entries)
	case "yaml":
		return outputYAML(out, entries)
	default:
		return outputTable(out, entries)
	}
}

func outputListJSON(w io.Writer, entries []SectionEntry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func outputYAML(w io.Writer, entries []SectionEntry) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(entries)
}

func outputTable(out io.Writer, entries []SectionEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tBREADCRUMB\tSOURCE\tBACKLINKS")
	fmt.Fprintln(w, "--\t-----\t----------\t------\t---------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Title, strings.Join(e.Breadcrumb, " › "), e.Source, len(e.Backlinks))
	}
	fmt.Fprintf(w, "\nTotal: %d sections\n", len(entries))

	return w.Flush()
}
