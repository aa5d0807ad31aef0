// Package theme holds the fixed visual vocabulary of the manual: the callout
// variant registry and the enforcement badge table.
//
// A Registry is built once at startup and handed to the renderers. It has no
// mutable state and is safe for concurrent use.
package theme

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/manualkit/internal/types"
)

var (
	// ErrUnknownVariant is returned for a variant outside the closed set.
	ErrUnknownVariant = errors.New("unknown callout variant")
	// ErrUnknownEnforcement is returned for an enforcement level outside
	// System, Policy and Advisory.
	ErrUnknownEnforcement = errors.New("unknown enforcement level")
)

// VariantStyle is the visual treatment of a callout variant.
type VariantStyle struct {
	// Label is the default heading used when a callout has no title.
	Label string
	// BorderAccent is the left border color.
	BorderAccent string
	// Background is the tinted background color.
	Background string
	// Icon names the icon asset (lucide icon set).
	Icon string
	// Glyph is the icon stand-in for terminal output.
	Glyph     string
	IconColor string
}

// Badge is the visual treatment of an enforcement level.
type Badge struct {
	Label      string
	Class      string
	Foreground string
	Background string
	// Weight orders badges by visual emphasis. Higher is heavier.
	Weight int
}

var variantStyles = [...]VariantStyle{
	types.VariantInfo:         {BorderAccent: "#3b82f6", Background: "#eff6ff", Icon: "info", Glyph: "ℹ", IconColor: "#2563eb"},
	types.VariantWarning:      {BorderAccent: "#f59e0b", Background: "#fffbeb", Icon: "alert-triangle", Glyph: "⚠", IconColor: "#d97706"},
	types.VariantTip:          {BorderAccent: "#10b981", Background: "#ecfdf5", Icon: "lightbulb", Glyph: "✦", IconColor: "#059669"},
	types.VariantNote:         {BorderAccent: "#6b7280", Background: "#f9fafb", Icon: "sticky-note", Glyph: "✎", IconColor: "#4b5563"},
	types.VariantPrerequisite: {BorderAccent: "#8b5cf6", Background: "#f5f3ff", Icon: "list-checks", Glyph: "☑", IconColor: "#7c3aed"},
	types.VariantSuccess:      {BorderAccent: "#22c55e", Background: "#f0fdf4", Icon: "check-circle", Glyph: "✔", IconColor: "#16a34a"},
	types.VariantCritical:     {BorderAccent: "#ef4444", Background: "#fef2f2", Icon: "octagon-alert", Glyph: "✖", IconColor: "#dc2626"},
	types.VariantCompliance:   {BorderAccent: "#0ea5e9", Background: "#f0f9ff", Icon: "scale", Glyph: "§", IconColor: "#0284c7"},
	types.VariantIndustry:     {BorderAccent: "#f97316", Background: "#fff7ed", Icon: "factory", Glyph: "⚙", IconColor: "#ea580c"},
	types.VariantIntegration:  {BorderAccent: "#14b8a6", Background: "#f0fdfa", Icon: "plug", Glyph: "⇄", IconColor: "#0d9488"},
	types.VariantSecurity:     {BorderAccent: "#64748b", Background: "#f8fafc", Icon: "shield", Glyph: "⛨", IconColor: "#475569"},
	types.VariantFuture:       {BorderAccent: "#a855f7", Background: "#faf5ff", Icon: "rocket", Glyph: "➚", IconColor: "#9333ea"},
}

// Fails to compile when a variant is added without a style entry.
var _ = [1]struct{}{}[len(variantStyles)-int(types.VariantCount)]

var badgeTable = [...]Badge{
	types.EnforcementSystem:   {Class: "badge-system", Foreground: "#ffffff", Background: "#b91c1c", Weight: 3},
	types.EnforcementPolicy:   {Class: "badge-policy", Foreground: "#92400e", Background: "#fde68a", Weight: 2},
	types.EnforcementAdvisory: {Class: "badge-advisory", Foreground: "#374151", Background: "#e5e7eb", Weight: 1},
}

var _ = [1]struct{}{}[len(badgeTable)-int(types.EnforcementCount)]

// Registry resolves variants and enforcement levels to their visual treatment.
type Registry struct {
	variants [types.VariantCount]VariantStyle
	badges   [types.EnforcementCount]Badge
}

// New returns the registry with the manual's standard palette.
func New() *Registry {
	return Custom(variantStyles, badgeTable)
}

// Custom builds a registry from explicit tables. The array types make a
// partial table impossible. Empty labels are filled from the variant and
// level names.
func Custom(variants [types.VariantCount]VariantStyle, badges [types.EnforcementCount]Badge) *Registry {
	title := cases.Title(language.English)

	r := &Registry{variants: variants, badges: badges}
	for i := range r.variants {
		if r.variants[i].Label == "" {
			r.variants[i].Label = title.String(types.Variant(i).String())
		}
	}
	for i := range r.badges {
		if r.badges[i].Label == "" {
			r.badges[i].Label = title.String(types.Enforcement(i).String())
		}
	}
	return r
}

// Variant returns the style for v.
func (r *Registry) Variant(v types.Variant) (VariantStyle, error) {
	if !v.Valid() {
		return VariantStyle{}, fmt.Errorf("%w: %s", ErrUnknownVariant, v)
	}
	return r.variants[v], nil
}

// Badge returns the badge for an enforcement level.
func (r *Registry) Badge(e types.Enforcement) (Badge, error) {
	if !e.Valid() {
		return Badge{}, fmt.Errorf("%w: %s", ErrUnknownEnforcement, e)
	}
	return r.badges[e], nil
}

// RequiredBadge is the label of the binary "required" badge.
func RequiredBadge(required bool) string {
	if required {
		return "Yes"
	}
	return "No"
}
