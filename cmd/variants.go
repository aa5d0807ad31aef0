package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/conneroisu/manualkit/internal/theme"
	"github.com/conneroisu/manualkit/internal/types"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List callout variants and enforcement badges",
	Long: `List every callout variant with its default title, icon and colors, and
every business rule enforcement level with its badge.`,
	Args: cobra.NoArgs,
	RunE: runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	reg := theme.New()

	variants := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Variant", "Title", "Icon", "Glyph", "Border", "Background")
	for v := types.Variant(0); v < types.VariantCount; v++ {
		style, err := reg.Variant(v)
		if err != nil {
			return err
		}
		variants.Row(v.String(), style.Label, style.Icon, style.Glyph, style.BorderAccent, style.Background)
	}

	badges := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Enforcement", "Badge", "Class", "Weight")
	for e := types.Enforcement(0); e < types.EnforcementCount; e++ {
		badge, err := reg.Badge(e)
		if err != nil {
			return err
		}
		badges.Row(e.String(), badge.Label, badge.Class, fmt.Sprint(badge.Weight))
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", variants.String(), badges.String())
	return err
}
