package widget

import (
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/view"
)

// Placeholder stands in for a missing value.
const Placeholder = "?"

// SummaryView holds the two derived lines of a progress summary.
type SummaryView struct {
	Velocity string
	Updated  string
}

// Summary derives the velocity and updated lines. Missing data is
// substituted, never reported.
func Summary(p *model.ProgressRecord) SummaryView {
	if p == nil {
		p = &model.ProgressRecord{}
	}
	vel := p.Velocity
	if vel == nil {
		vel = &model.Velocity{}
	}

	weekly := Placeholder
	if vel.Weekly != nil {
		weekly = FormatNumber(*vel.Weekly)
	}
	unit := ""
	if vel.Unit != nil {
		unit = *vel.Unit
	}
	updated := Placeholder
	if p.UpdatedAt != nil {
		updated = *p.UpdatedAt
	}

	return SummaryView{
		Velocity: "Velocity: " + weekly + " " + unit,
		Updated:  "Updated: " + updated,
	}
}

// Node builds the summary block.
func (s SummaryView) Node() view.Node {
	return view.El("div", []view.Style{view.S("font-size", "12px")},
		view.El("div", nil, view.Text(s.Velocity)),
		view.El("div", nil, view.Text(s.Updated)),
	).WithAttr("data-widget", "summary")
}
