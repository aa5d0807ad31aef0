package types

import (
	"fmt"
	"strings"
)

// Variant selects the visual treatment of a callout. The set is closed:
// adding a constant requires a matching entry in the theme registry.
type Variant int

const (
	VariantInfo Variant = iota
	VariantWarning
	VariantTip
	VariantNote
	VariantPrerequisite
	VariantSuccess
	VariantCritical
	VariantCompliance
	VariantIndustry
	VariantIntegration
	VariantSecurity
	VariantFuture

	// VariantCount is the number of known variants. Keep it last.
	VariantCount
)

var variantNames = [VariantCount]string{
	VariantInfo:         "info",
	VariantWarning:      "warning",
	VariantTip:          "tip",
	VariantNote:         "note",
	VariantPrerequisite: "prerequisite",
	VariantSuccess:      "success",
	VariantCritical:     "critical",
	VariantCompliance:   "compliance",
	VariantIndustry:     "industry",
	VariantIntegration:  "integration",
	VariantSecurity:     "security",
	VariantFuture:       "future",
}

// String returns the content tag of the variant.
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	return v >= 0 && v < VariantCount
}

// Variants returns every known variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, 0, VariantCount)
	for v := Variant(0); v < VariantCount; v++ {
		out = append(out, v)
	}
	return out
}

// ParseVariant resolves a content tag. The empty string is the default
// variant, info.
func ParseVariant(tag string) (Variant, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return VariantInfo, nil
	}
	for v, name := range variantNames {
		if name == tag {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("unknown callout variant %q", tag)
}

// Enforcement describes how rigidly a business rule is enforced by the
// product. It only drives presentation.
type Enforcement int

const (
	EnforcementSystem Enforcement = iota
	EnforcementPolicy
	EnforcementAdvisory

	EnforcementCount
)

var enforcementNames = [EnforcementCount]string{
	EnforcementSystem:   "System",
	EnforcementPolicy:   "Policy",
	EnforcementAdvisory: "Advisory",
}

func (e Enforcement) String() string {
	if !e.Valid() {
		return fmt.Sprintf("enforcement(%d)", int(e))
	}
	return enforcementNames[e]
}

// Valid reports whether e is one of System, Policy or Advisory.
func (e Enforcement) Valid() bool {
	return e >= 0 && e < EnforcementCount
}

// ParseEnforcement accepts the level names case-insensitively.
func ParseEnforcement(s string) (Enforcement, error) {
	s = strings.TrimSpace(s)
	for e, name := range enforcementNames {
		if strings.EqualFold(name, s) {
			return Enforcement(e), nil
		}
	}
	return 0, fmt.Errorf("unknown enforcement level %q", s)
}

// FieldType is the semantic type shown in a field reference table.
type FieldType string

const (
	FieldText      FieldType = "Text"
	FieldNumber    FieldType = "Number"
	FieldBoolean   FieldType = "Boolean"
	FieldEnum      FieldType = "Enum"
	FieldUUID      FieldType = "UUID"
	FieldJSON      FieldType = "JSON"
	FieldArray     FieldType = "Array"
	FieldTimestamp FieldType = "Timestamp"
)

var fieldTypes = []FieldType{
	FieldText, FieldNumber, FieldBoolean, FieldEnum,
	FieldUUID, FieldJSON, FieldArray, FieldTimestamp,
}

// Known reports whether t is one of the documented semantic types.
func (t FieldType) Known() bool {
	for _, known := range fieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseFieldType normalizes the case of a type name, e.g. "uuid" -> UUID.
func ParseFieldType(s string) (FieldType, error) {
	s = strings.TrimSpace(s)
	for _, known := range fieldTypes {
		if strings.EqualFold(string(known), s) {
			return known, nil
		}
	}
	return FieldType(s), fmt.Errorf("unknown field type %q", s)
}
