package registry

import (
	"sort"

	"github.com/conneroisu/manualkit/internal/types"
)

// Navigation maps section identifiers to breadcrumb trails.
type Navigation struct {
	paths map[string]types.NavigationPath
}

// NewNavigation builds a standalone navigation registry.
func NewNavigation(paths map[string]types.NavigationPath) *Navigation {
	copied := make(map[string]types.NavigationPath, len(paths))
	for k, v := range paths {
		copied[k] = append(types.NavigationPath(nil), v...)
	}
	return &Navigation{paths: copied}
}

// Lookup returns the trail for id, or nil when there is no entry.
func (n *Navigation) Lookup(id string) types.NavigationPath {
	if n == nil {
		return nil
	}
	path, ok := n.paths[id]
	if !ok {
		return nil
	}
	return append(types.NavigationPath(nil), path...)
}

// Has reports whether id has an entry.
func (n *Navigation) Has(id string) bool {
	if n == nil {
		return false
	}
	_, ok := n.paths[id]
	return ok
}

// Keys returns every registered identifier, sorted.
func (n *Navigation) Keys() []string {
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.paths))
	for k := range n.paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (n *Navigation) Len() int {
	if n == nil {
		return 0
	}
	return len(n.paths)
}
