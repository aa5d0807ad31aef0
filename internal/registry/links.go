package registry

import (
	"sort"

	"github.com/conneroisu/manualkit/internal/types"
)

// LinkGraph is the cross-reference graph between sections, built from each
// section's related topics and related-topics blocks.
type LinkGraph struct {
	outgoing map[string][]string
	incoming map[string][]string
	order    []string
}

func newLinkGraph(r *Registry) *LinkGraph {
	g := &LinkGraph{
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}

	for _, s := range r.sections {
		g.order = append(g.order, s.ID)
		seen := make(map[string]bool)
		add := func(target string) {
			if target == "" || target == s.ID || seen[target] {
				return
			}
			seen[target] = true
			g.outgoing[s.ID] = append(g.outgoing[s.ID], target)
			g.incoming[target] = append(g.incoming[target], s.ID)
		}

		for _, t := range s.Related {
			add(t.SectionID)
		}
		types.Walk(s.Blocks, func(_ []int, b types.Block) {
			switch v := b.(type) {
			case types.RelatedTopics:
				for _, t := range v.Topics {
					add(t.SectionID)
				}
			case types.Navigation:
				if len(v.Labels) == 0 {
					add(v.SectionID)
				}
			}
		})
	}
	return g
}

// Outgoing returns the sections id links to, in document order.
func (g *LinkGraph) Outgoing(id string) []string {
	return append([]string(nil), g.outgoing[id]...)
}

// Backlinks returns the sections that link to id, sorted.
func (g *LinkGraph) Backlinks(id string) []string {
	out := append([]string(nil), g.incoming[id]...)
	sort.Strings(out)
	return out
}

// Targets returns every identifier referenced by any section, including
// identifiers that do not resolve, sorted.
func (g *LinkGraph) Targets() []string {
	out := make([]string, 0, len(g.incoming))
	for id := range g.incoming {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Orphans returns the sections no other section links to, in load order.
// The first section is treated as the manual's entry point and never
// reported.
func (g *LinkGraph) Orphans() []string {
	var out []string
	for i, id := range g.order {
		if i == 0 {
			continue
		}
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}
