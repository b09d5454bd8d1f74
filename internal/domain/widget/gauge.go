// Package widget derives display values from widget props and builds their
// render trees. Every function here is pure: no errors, no side effects,
// identical input gives an identical tree.
package widget

import (
	"math"
	"strconv"

	"github.com/okian/panelkit/internal/domain/view"
	"github.com/spf13/cast"
)

// Gauge bounds.
const (
	GaugeMin = 0
	GaugeMax = 100

	// DefaultGaugeLabel is used when the caller passes an empty label.
	DefaultGaugeLabel = "Progress"
)

// GaugeView is a labelled percentage, already clamped.
type GaugeView struct {
	Label   string
	Percent float64
}

// Gauge coerces value to a number and clamps it to [0,100]. Values that do
// not coerce (nil, "abc", NaN) become 0. An empty label counts as absent
// and gets DefaultGaugeLabel; there is no way to render a blank caption.
func Gauge(value any, label string) GaugeView {
	if label == "" {
		label = DefaultGaugeLabel
	}
	return GaugeView{Label: label, Percent: Clamp(Coerce(value), GaugeMin, GaugeMax)}
}

// Coerce converts any value to a float64, falling back to 0.
func Coerce(value any) float64 {
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FormatNumber prints a float in its shortest decimal form: 42, 42.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Text is the label line, e.g. "Progress: 40%".
func (g GaugeView) Text() string {
	return g.Label + ": " + FormatNumber(g.Percent) + "%"
}

// Ratio is Percent scaled to [0,1].
func (g GaugeView) Ratio() float64 {
	return g.Percent / GaugeMax
}

// Node builds the label line over a two-layer bar whose fill width tracks
// Percent.
func (g GaugeView) Node() view.Node {
	width := FormatNumber(g.Percent) + "%"
	return view.El("div", []view.Style{view.S("width", "100%")},
		view.El("div", []view.Style{view.S("font-size", "12px")}, view.Text(g.Text())),
		view.El("div", []view.Style{view.S("height", "8px"), view.S("background", "#eee")},
			view.El("div", []view.Style{view.S("width", width), view.S("height", "8px")}),
		),
	).WithAttr("data-widget", "gauge")
}
