package docs

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/panelkit/internal/domain/view"
)

// WidgetView is a resolved widget: widget.GaugeView, widget.SummaryView or
// widget.TableView.
type WidgetView interface {
	Node() view.Node
}

// Element is one block of a document page with its component resolved.
// Exactly one of Prose and View is set.
type Element struct {
	Prose string
	View  WidgetView
}

// Elements parses the document at path and resolves its components without
// rendering HTML. Hosts other than the site (the terminal) render from this.
func (r *Renderer) Elements(ctx context.Context, src Source) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Kind.Executable() {
		return nil, fmt.Errorf("%s: %s pages are not documents", src.Route, src.Kind)
	}
	raw, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", src.Route, err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Route, err)
	}
	sc, al, err := r.loadImports(src, doc.Imports)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if b.Component == nil {
			out = append(out, Element{Prose: b.Prose})
			continue
		}
		v, err := resolve(sc, al, *b.Component)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", src.Route, b.Component.Line, err)
		}
		out = append(out, Element{View: v})
	}
	return out, nil
}
