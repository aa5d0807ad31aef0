// Package registry provides the closed section identifier space of the
// manual and the navigation path registry keyed by it.
//
// Both registries are assembled with a Builder while content loads and are
// immutable once built, so they can be shared by every renderer without
// locking.
package registry

import (
	"fmt"
	"sort"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/types"
)

// Error codes reported by the builder.
const (
	CodeDuplicateSection       = "duplicate-section"
	CodeDuplicateNavigationKey = "duplicate-navigation-key"
	CodeEmptySectionID         = "empty-section-id"
)

// Registry is the immutable set of sections in load order.
type Registry struct {
	sections []*types.Section
	index    map[string]int
	nav      *Navigation
	links    *LinkGraph
}

// Builder collects sections and navigation paths.
type Builder struct {
	sections []*types.Section
	index    map[string]int
	paths    map[string]types.NavigationPath
	built    bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
		paths: make(map[string]types.NavigationPath),
	}
}

// Add registers a section. Identifiers must be non-empty and unique.
func (b *Builder) Add(section *types.Section) error {
	if section.ID == "" {
		return errors.NewValidationError(CodeEmptySectionID, "section has no id").
			WithLocation(section.Source, "/id")
	}
	if i, exists := b.index[section.ID]; exists {
		return errors.NewValidationError(CodeDuplicateSection,
			fmt.Sprintf("section %q is already defined in %s", section.ID, b.sections[i].Source)).
			WithSection(section.ID).
			WithLocation(section.Source, "/id")
	}

	b.index[section.ID] = len(b.sections)
	b.sections = append(b.sections, section)
	return nil
}

// SetNavigation registers the breadcrumb for a section identifier. The
// identifier is not checked here; the linter reports keys without a section.
func (b *Builder) SetNavigation(sectionID string, path types.NavigationPath) error {
	if _, exists := b.paths[sectionID]; exists {
		return errors.NewValidationError(CodeDuplicateNavigationKey,
			fmt.Sprintf("navigation path for %q is defined twice", sectionID)).
			WithSection(sectionID)
	}
	b.paths[sectionID] = append(types.NavigationPath(nil), path...)
	return nil
}

// Build freezes the builder into a Registry. The builder must not be used
// afterwards.
func (b *Builder) Build() *Registry {
	if b.built {
		panic("registry: Build called twice")
	}
	b.built = true

	r := &Registry{
		sections: b.sections,
		index:    b.index,
		nav:      &Navigation{paths: b.paths},
	}
	r.links = newLinkGraph(r)
	return r
}

// Get retrieves a section by identifier.
func (r *Registry) Get(id string) (*types.Section, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.sections[i], true
}

// Has reports whether id names a section.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// All returns every section in load order.
func (r *Registry) All() []*types.Section {
	out := make([]*types.Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// IDs returns every section identifier, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.index))
	for id := range r.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of sections.
func (r *Registry) Count() int {
	return len(r.sections)
}

// Navigation returns the navigation path registry.
func (r *Registry) Navigation() *Navigation {
	return r.nav
}

// Links returns the cross-reference graph between sections.
func (r *Registry) Links() *LinkGraph {
	return r.links
}

// Breadcrumb resolves the trail for a section: its inline navigation if
// present, otherwise the registry entry. Unknown sections yield nil.
func (r *Registry) Breadcrumb(id string) types.NavigationPath {
	if s, ok := r.Get(id); ok && len(s.Navigation) > 0 {
		return types.NavigationPath(s.Navigation)
	}
	return r.nav.Lookup(id)
}
