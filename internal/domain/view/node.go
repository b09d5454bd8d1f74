// Package view contains the render tree produced by widgets.
//
// A tree is a value: it is built once per render, never mutated afterwards,
// and two renders of the same input compare equal with Equal.
package view

import (
	"strings"
)

// Kind distinguishes element nodes from text nodes.
type Kind int

// Node kinds.
const (
	KindElement Kind = iota
	KindText
)

// Style is a single inline style declaration. Order is preserved so that
// output is stable across renders.
type Style struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Attr is a plain element attribute.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Node is an element or a text leaf.
type Node struct {
	Kind     Kind    `json:"kind"`
	Tag      string  `json:"tag,omitempty"`
	Text     string  `json:"text,omitempty"`
	Styles   []Style `json:"styles,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Children []Node  `json:"children,omitempty"`
}

// El builds an element node.
func El(tag string, styles []Style, children ...Node) Node {
	return Node{Kind: KindElement, Tag: tag, Styles: styles, Children: children}
}

// Text builds a text node.
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// S is shorthand for a style declaration.
func S(property, value string) Style {
	return Style{Property: property, Value: value}
}

// WithAttr returns a copy of n carrying an extra attribute.
func (n Node) WithAttr(key, value string) Node {
	attrs := make([]Attr, 0, len(n.Attrs)+1)
	attrs = append(attrs, n.Attrs...)
	n.Attrs = append(attrs, Attr{Key: key, Value: value})
	return n
}

// StyleAttr renders the inline style list as a CSS declaration string.
func (n Node) StyleAttr() string {
	if len(n.Styles) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Styles))
	for _, s := range n.Styles {
		parts = append(parts, s.Property+":"+s.Value)
	}
	return strings.Join(parts, ";")
}

// TextContent concatenates every text leaf under n in document order.
func (n Node) TextContent() string {
	var b strings.Builder
	n.walkText(&b)
	return b.String()
}

func (n Node) walkText(b *strings.Builder) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.walkText(b)
	}
}

// Find returns every element under n (n included) with the given tag.
func (n Node) Find(tag string) []Node {
	var out []Node
	if n.Kind == KindElement && n.Tag == tag {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.Find(tag)...)
	}
	return out
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool {
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Text != b.Text {
		return false
	}
	if len(a.Styles) != len(b.Styles) || len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Styles {
		if a.Styles[i] != b.Styles[i] {
			return false
		}
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
