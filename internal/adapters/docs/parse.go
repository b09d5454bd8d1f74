package docs

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

var (
	importRe    = regexp.MustCompile(`^import\s+([A-Za-z_$][\w$]*)\s+from\s+["']([^"']+)["']\s*;?\s*$`)
	componentRe = regexp.MustCompile(`^<([A-Z][A-Za-z0-9]*)((?:\s+[^<>]*?)?)\s*/>$`)
	attrRe      = regexp.MustCompile(`([A-Za-z_][\w-]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|\{([^{}]*)\})`)
)

// Import binds a name to a data file or a component module.
type Import struct {
	Name string
	Path string
	Line int
}

// Prop is a component attribute: either a quoted literal or a {expression}.
type Prop struct {
	Literal string
	Expr    string
	IsExpr  bool
}

// Component is a self-closing widget tag on its own line.
type Component struct {
	Name  string
	Props map[string]Prop
	Line  int
}

// Block is either prose or a component.
type Block struct {
	Prose     string
	Component *Component
}

// Document is a parsed extended-markdown page.
type Document struct {
	Imports []Import
	Blocks  []Block
}

// Parse splits src into imports, prose and component blocks. An import
// line is recognised anywhere outside fenced code and applies to the whole
// page. Fenced code is always prose.
func Parse(src []byte) (Document, error) {
	var (
		doc     Document
		prose   strings.Builder
		fence   string
		lineNum int
		names   = make(map[string]int)
	)
	flush := func() {
		if strings.TrimSpace(prose.String()) != "" {
			doc.Blocks = append(doc.Blocks, Block{Prose: prose.String()})
		}
		prose.Reset()
	}

	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			prose.WriteString(line + "\n")
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			prose.WriteString(line + "\n")
			continue
		}

		if m := importRe.FindStringSubmatch(trimmed); m != nil {
			if prev, dup := names[m[1]]; dup {
				return Document{}, fmt.Errorf("line %d: %q already imported on line %d: %w", lineNum, m[1], prev, ErrDuplicateImport)
			}
			names[m[1]] = lineNum
			doc.Imports = append(doc.Imports, Import{Name: m[1], Path: m[2], Line: lineNum})
			continue
		}

		if strings.HasPrefix(trimmed, "<") && len(trimmed) > 1 && trimmed[1] >= 'A' && trimmed[1] <= 'Z' {
			c, err := parseComponent(trimmed, lineNum)
			if err != nil {
				return Document{}, err
			}
			flush()
			doc.Blocks = append(doc.Blocks, Block{Component: c})
			continue
		}

		prose.WriteString(line + "\n")
	}
	if err := sc.Err(); err != nil {
		return Document{}, fmt.Errorf("scan page: %w", err)
	}
	flush()
	return doc, nil
}

func parseComponent(tag string, line int) (*Component, error) {
	m := componentRe.FindStringSubmatch(tag)
	if m == nil {
		return nil, fmt.Errorf("line %d: %q: %w", line, tag, ErrMalformedComponent)
	}
	c := &Component{Name: m[1], Props: make(map[string]Prop), Line: line}
	rest := m[2]
	for _, am := range attrRe.FindAllStringSubmatchIndex(rest, -1) {
		key := rest[am[2]:am[3]]
		switch {
		case am[4] >= 0:
			c.Props[key] = Prop{Literal: rest[am[4]:am[5]]}
		case am[6] >= 0:
			c.Props[key] = Prop{Literal: rest[am[6]:am[7]]}
		default:
			c.Props[key] = Prop{Expr: strings.TrimSpace(rest[am[8]:am[9]]), IsExpr: true}
		}
	}
	if leftover := strings.TrimSpace(attrRe.ReplaceAllString(rest, "")); leftover != "" {
		return nil, fmt.Errorf("line %d: unexpected %q in <%s>: %w", line, leftover, c.Name, ErrMalformedComponent)
	}
	return c, nil
}
