// Package search provides full-text search over the loaded manual.
//
// The index lives in memory and is rebuilt from the section registry on every
// invocation; a manual is small enough that indexing costs less than opening
// an on-disk index would.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/types"
)

// DefaultLimit caps the number of hits when no limit is given.
const DefaultLimit = 10

// document is what gets indexed for one section.
type document struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Audience   string `json:"audience"`
	Breadcrumb string `json:"breadcrumb"`
	Body       string `json:"body"`
}

// Hit is one search result.
type Hit struct {
	SectionID  string  `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	Breadcrumb string  `json:"breadcrumb,omitempty" yaml:"breadcrumb,omitempty"`
	Score      float64 `json:"score" yaml:"score"`
}

// Index is a searchable view of a registry.
type Index struct {
	index  bleve.Index
	logger logging.Logger
}

// Build indexes every section of reg.
func Build(ctx context.Context, reg *registry.Registry, logger logging.Logger) (*Index, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.WithComponent("search")

	op := logging.StartOperation(logger, "index")
	index, err := buildIndex(ctx, reg)
	if err != nil {
		op.EndWithError(ctx, err)
		return nil, err
	}
	op.End(ctx, "sections", reg.Count())
	return &Index{index: index, logger: logger}, nil
}

func buildIndex(ctx context.Context, reg *registry.Registry) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	batch := index.NewBatch()
	for _, s := range reg.All() {
		if err := ctx.Err(); err != nil {
			index.Close()
			return nil, err
		}
		doc := document{
			Title:      s.Title,
			Summary:    s.Summary,
			Audience:   s.Audience,
			Breadcrumb: strings.Join(reg.Breadcrumb(s.ID), " › "),
			Body:       Text(s.Blocks),
		}
		if err := batch.Index(s.ID, doc); err != nil {
			index.Close()
			return nil, fmt.Errorf("indexing %s: %w", s.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, fmt.Errorf("writing index batch: %w", err)
	}
	return index, nil
}

func newMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Store = true

	doc := bleve.NewDocumentMapping()
	for _, name := range []string{"title", "summary", "audience", "breadcrumb", "body"} {
		doc.AddFieldMappingsAt(name, text)
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Search runs a match query and returns at most limit hits, best first.
// Title matches weigh more than body matches.
func (i *Index) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	title := bleve.NewMatchQuery(q)
	title.SetField("title")
	title.SetBoost(3)
	summary := bleve.NewMatchQuery(q)
	summary.SetField("summary")
	summary.SetBoost(2)
	rest := bleve.NewMatchQuery(q)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(title, summary, rest))
	req.Size = limit
	req.Fields = []string{"title", "breadcrumb"}

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", q, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{SectionID: h.ID, Score: h.Score}
		if v, ok := h.Fields["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := h.Fields["breadcrumb"].(string); ok {
			hit.Breadcrumb = v
		}
		hits = append(hits, hit)
	}
	i.logger.Debug(ctx, "search finished", "query", q, "hits", len(hits), "total", res.Total)
	return hits, nil
}

// Count returns the number of indexed sections.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// Text flattens blocks into the plain text that gets indexed.
func Text(blocks []types.Block) string {
	var parts []string
	add := func(s ...string) {
		for _, v := range s {
			if v != "" {
				parts = append(parts, v)
			}
		}
	}
	types.Walk(blocks, func(_ []int, b types.Block) {
		switch b := b.(type) {
		case types.Paragraph:
			add(b.Markdown)
		case types.List:
			add(b.Title)
			add(b.Items...)
		case types.Callout:
			add(b.Title)
		case types.FieldTable:
			add(b.Title)
			for _, f := range b.Fields {
				add(f.Name, f.Description, f.Validation)
			}
		case types.BusinessRules:
			add(b.Title)
			for _, r := range b.Rules {
				add(r.Rule, r.Description)
			}
		case types.Steps:
			add(b.Title)
			for _, s := range b.Steps {
				add(s.Title, s.Description, s.ExpectedResult)
				add(s.Substeps...)
			}
		case types.Diagram:
			add(b.Title, b.Description)
		case types.RelatedTopics:
			add(b.Title)
			for _, t := range b.Topics {
				add(t.Title)
			}
		}
	})
	return strings.Join(parts, "\n")
}
