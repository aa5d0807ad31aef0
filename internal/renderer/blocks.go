package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/types"
)

// Block renders one content block. A block that fails is replaced by a
// content-error placeholder and the failure is logged; the returned
// component only fails when writing to w fails.
func (r *Renderer) Block(b types.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.unit(b).Render(ctx, &buf); err != nil {
			kind := kindOf(b)
			r.logger.Warn(ctx, err, "block rendered as placeholder", "block", kind)
			return ContentError(kind, err).Render(ctx, w)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Blocks renders blocks in order with Block.
func (r *Renderer) Blocks(blocks []types.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, b := range blocks {
			if err := r.Block(b).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// unit maps a block to its rendering unit. Nested callout content goes
// through Block so a failing child degrades alone.
func (r *Renderer) unit(b types.Block) templ.Component {
	switch b := b.(type) {
	case types.Paragraph:
		return r.Markdown(b.Markdown)
	case types.List:
		return r.List(b)
	case types.Callout:
		return r.Callout(CalloutProps{Variant: b.Variant, Title: b.Title, Class: b.Class}, r.Blocks(b.Body))
	case types.FieldTable:
		return r.FieldReferenceTable(b.Title, b.Fields)
	case types.BusinessRules:
		return r.BusinessRules(b.Title, b.Rules)
	case types.Steps:
		return r.StepByStep(b.Title, b.Steps)
	case types.Diagram:
		return r.WorkflowDiagram(b.Title, b.Description, b.Source)
	case types.Navigation:
		return r.Navigation(b)
	case types.RelatedTopics:
		return r.RelatedTopics(b.Title, b.Topics)
	case nil:
		return failing(fmt.Errorf("nil block"))
	default:
		return failing(fmt.Errorf("unsupported block type %T", b))
	}
}

func kindOf(b types.Block) string {
	if b == nil {
		return "unknown"
	}
	return string(b.Kind())
}

func failing(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.NewRenderError(errors.ErrCodeRenderFailed, "rendering block", err)
	})
}

// ContentError is the placeholder rendered in place of a failing block.
func ContentError(kind string, err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<div class="content-error" role="alert"`)
		o.attr("data-block", kind)
		o.raw(`><strong class="content-error-title">Content error</strong><p class="content-error-message">`)
		o.text(fmt.Sprintf("This %s block could not be rendered: %v", kind, err))
		o.raw("</p></div>")
		return o.err
	})
}
