package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/manualkit/internal/types"
)

func TestRegistryCoversEveryVariant(t *testing.T) {
	r := New()

	icons := make(map[string]types.Variant)
	for _, v := range types.Variants() {
		style, err := r.Variant(v)
		require.NoError(t, err, v.String())

		assert.NotEmpty(t, style.BorderAccent, v.String())
		assert.NotEmpty(t, style.Background, v.String())
		assert.NotEmpty(t, style.Icon, v.String())
		assert.NotEmpty(t, style.Glyph, v.String())
		assert.NotEmpty(t, style.IconColor, v.String())
		assert.NotEmpty(t, style.Label, v.String())

		if other, dup := icons[style.Icon]; dup {
			t.Errorf("variants %s and %s share icon %q", v, other, style.Icon)
		}
		icons[style.Icon] = v
	}
}

func TestRegistryLabels(t *testing.T) {
	r := New()

	style, err := r.Variant(types.VariantPrerequisite)
	require.NoError(t, err)
	assert.Equal(t, "Prerequisite", style.Label)

	badge, err := r.Badge(types.EnforcementAdvisory)
	require.NoError(t, err)
	assert.Equal(t, "Advisory", badge.Label)
}

func TestRegistryRejectsUnknownValues(t *testing.T) {
	r := New()

	_, err := r.Variant(types.VariantCount)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = r.Variant(types.Variant(-3))
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = r.Badge(types.Enforcement(7))
	assert.ErrorIs(t, err, ErrUnknownEnforcement)
}

func TestBadgeWeightsAreStrictlyOrdered(t *testing.T) {
	r := New()

	system, err := r.Badge(types.EnforcementSystem)
	require.NoError(t, err)
	policy, err := r.Badge(types.EnforcementPolicy)
	require.NoError(t, err)
	advisory, err := r.Badge(types.EnforcementAdvisory)
	require.NoError(t, err)

	assert.Greater(t, system.Weight, policy.Weight)
	assert.Greater(t, policy.Weight, advisory.Weight)
	assert.NotEqual(t, system.Class, advisory.Class)
	assert.NotEqual(t, system.Background, advisory.Background)
}

func TestCustomKeepsExplicitLabels(t *testing.T) {
	var variants [types.VariantCount]VariantStyle
	variants[types.VariantTip] = VariantStyle{Label: "Pro tip"}
	var badges [types.EnforcementCount]Badge

	r := Custom(variants, badges)

	tip, err := r.Variant(types.VariantTip)
	require.NoError(t, err)
	assert.Equal(t, "Pro tip", tip.Label)

	warning, err := r.Variant(types.VariantWarning)
	require.NoError(t, err)
	assert.Equal(t, "Warning", warning.Label)
}

func TestRequiredBadge(t *testing.T) {
	assert.Equal(t, "Yes", RequiredBadge(true))
	assert.Equal(t, "No", RequiredBadge(false))
}
