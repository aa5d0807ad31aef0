package content

import (
	"fmt"
	"strings"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/types"
)

// Finding codes reported while converting content.
const (
	CodeSchema             = "schema"
	CodeDecode             = "decode"
	CodeUnknownVariant     = "unknown-variant"
	CodeUnknownEnforcement = "unknown-enforcement"
	CodeUnknownFieldType   = "unknown-field-type"
)

// converter turns a decoded section document into a types.Section and
// reports unknown enum values. A block with an unknown variant is dropped; a
// rule with an unknown enforcement level is dropped; an unknown field type is
// kept as written and reported as a warning.
type converter struct {
	file      string
	sectionID string
	findings  *errors.ErrorCollector
	origins   map[string]string
}

func (c *converter) report(severity errors.ErrorSeverity, code, ptr, msg string) {
	c.findings.Add(errors.Finding{
		Code:     code,
		Severity: severity,
		Section:  c.sectionID,
		File:     c.file,
		Pointer:  ptr,
		Message:  msg,
	})
}

func (c *converter) section(doc *sectionDoc) *types.Section {
	c.sectionID = doc.ID
	s := &types.Section{
		ID:          doc.ID,
		Title:       doc.Title,
		Audience:    doc.Audience,
		ReadingTime: doc.ReadingTime,
		Summary:     strings.TrimSpace(doc.Summary),
		Navigation:  doc.Navigation,
		Related:     topics(doc.Related),
		Source:      c.file,
	}
	c.origins = nil
	s.Blocks = c.blocks("/blocks", "/blocks", doc.Blocks)
	s.Origins = c.origins
	return s
}

// blocks converts docs found at src in the source document. out is where the
// converted blocks sit in Section.Blocks; it differs from src once a dropped
// block shifts its siblings.
func (c *converter) blocks(src, out string, docs []blockDoc) []types.Block {
	blocks := make([]types.Block, 0, len(docs))
	for i := range docs {
		srcPtr := fmt.Sprintf("%s/%d", src, i)
		outPtr := fmt.Sprintf("%s/%d", out, len(blocks))
		if b, ok := c.block(srcPtr, outPtr, &docs[i]); ok {
			if srcPtr != outPtr {
				if c.origins == nil {
					c.origins = make(map[string]string)
				}
				c.origins[outPtr] = srcPtr
			}
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (c *converter) block(ptr, outPtr string, d *blockDoc) (types.Block, bool) {
	switch types.BlockKind(d.Type) {
	case types.KindParagraph:
		return types.Paragraph{Markdown: d.Text}, true
	case types.KindList:
		return types.List{Title: d.Title, Ordered: d.Ordered, Checklist: d.Checklist, Items: d.Items}, true
	case types.KindCallout:
		v, err := types.ParseVariant(d.Variant)
		if err != nil {
			c.report(errors.ErrorSeverityError, CodeUnknownVariant, ptr+"/variant", err.Error())
			return nil, false
		}
		return types.Callout{
			Variant: v,
			Title:   d.Title,
			Class:   d.Class,
			Body:    c.blocks(ptr+"/body", outPtr+"/body", d.Body),
		}, true
	case types.KindFieldTable:
		return types.FieldTable{Title: d.Title, Fields: c.fields(ptr+"/fields", d.Fields)}, true
	case types.KindBusinessRules:
		return types.BusinessRules{Title: d.Title, Rules: c.rules(ptr+"/rules", d.Rules)}, true
	case types.KindSteps:
		steps := make([]types.WorkflowStep, len(d.Steps))
		for i, s := range d.Steps {
			steps[i] = types.WorkflowStep{
				Title:          s.Title,
				Description:    s.Description,
				Substeps:       s.Substeps,
				ExpectedResult: s.ExpectedResult,
			}
		}
		return types.Steps{Title: d.Title, Steps: steps}, true
	case types.KindDiagram:
		return types.Diagram{Title: d.Title, Description: d.Description, Source: d.Source}, true
	case types.KindNavigation:
		return types.Navigation{Labels: d.Labels, SectionID: d.Section}, true
	case types.KindRelated:
		return types.RelatedTopics{Title: d.Title, Topics: topics(d.Topics)}, true
	default:
		// The schema rejects unknown types before conversion.
		c.report(errors.ErrorSeverityError, CodeSchema, ptr+"/type",
			fmt.Sprintf("unknown block type %q", d.Type))
		return nil, false
	}
}

func (c *converter) fields(ptr string, docs []fieldDoc) []types.FieldDefinition {
	out := make([]types.FieldDefinition, len(docs))
	for i, f := range docs {
		ft, err := types.ParseFieldType(f.Type)
		if err != nil {
			c.report(errors.ErrorSeverityWarning, CodeUnknownFieldType,
				fmt.Sprintf("%s/%d/type", ptr, i), err.Error())
		}
		out[i] = types.FieldDefinition{
			Name:         f.Name,
			Required:     f.Required,
			Type:         ft,
			Description:  f.Description,
			DefaultValue: string(f.Default),
			Validation:   string(f.Validation),
		}
	}
	return out
}

func (c *converter) rules(ptr string, docs []ruleDoc) []types.BusinessRule {
	out := make([]types.BusinessRule, 0, len(docs))
	for i, r := range docs {
		e, err := types.ParseEnforcement(r.Enforcement)
		if err != nil {
			c.report(errors.ErrorSeverityError, CodeUnknownEnforcement,
				fmt.Sprintf("%s/%d/enforcement", ptr, i), err.Error())
			continue
		}
		out = append(out, types.BusinessRule{Rule: r.Rule, Enforcement: e, Description: r.Description})
	}
	return out
}

func topics(docs []topicDoc) []types.RelatedTopic {
	if len(docs) == 0 {
		return nil
	}
	out := make([]types.RelatedTopic, len(docs))
	for i, t := range docs {
		out[i] = types.RelatedTopic{SectionID: t.Section, Title: t.Title}
	}
	return out
}
