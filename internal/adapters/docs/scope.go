package docs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// scope holds the values bound by a page's imports.
type scope map[string]any

// eval resolves a prop. Literals are strings; expressions are numbers,
// booleans, null, or dotted references into imported data. A missing field
// below a known import yields nil; an unknown import name is an error.
func (s scope) eval(p Prop) (any, error) {
	if !p.IsExpr {
		return p.Literal, nil
	}
	expr := p.Expr
	switch expr {
	case "":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f, nil
	}
	if unq, err := strconv.Unquote(expr); err == nil {
		return unq, nil
	}

	parts := strings.Split(expr, ".")
	cur, ok := s[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%q: %w", parts[0], ErrUndefinedReference)
	}
	for _, key := range parts[1:] {
		m, err := cast.ToStringMapE(cur)
		if err != nil {
			return nil, nil
		}
		cur = m[key]
	}
	return cur, nil
}
