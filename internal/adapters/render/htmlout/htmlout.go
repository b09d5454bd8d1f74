// Package htmlout serializes render trees as HTML fragments.
package htmlout

import (
	"bytes"
	"fmt"
	"io"

	"github.com/okian/panelkit/internal/domain/view"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Convert builds an x/net/html node for n. Inline styles become a single
// style attribute placed before any other attributes.
func Convert(n view.Node) *html.Node {
	if n.Kind == view.KindText {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if style := n.StyleAttr(); style != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: style})
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	for _, c := range n.Children {
		out.AppendChild(Convert(c))
	}
	return out
}

// Render writes n to w. Text and attribute values are escaped.
func Render(w io.Writer, n view.Node) error {
	if err := html.Render(w, Convert(n)); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// String renders n into a string.
func String(n view.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustString is String for trees built by this module's widgets, whose
// rendering into memory cannot fail.
func MustString(n view.Node) string {
	s, err := String(n)
	if err != nil {
		panic(err)
	}
	return s
}
