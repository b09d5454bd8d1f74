package widget

import (
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/view"
)

// Columns shown for every row, in order.
var Columns = [3]string{"id", "title", "status"}

// Row is the displayed part of a DisplayRecord.
type Row struct {
	Key   string
	Cells [3]string
}

// TableView is a titled list of rows in caller order.
type TableView struct {
	Title string
	Rows  []Row
}

// Table keeps rows in the order supplied and does not deduplicate ids.
// Fields beyond title and status are ignored.
func Table(title string, records []model.DisplayRecord) TableView {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{Key: r.ID, Cells: [3]string{r.ID, r.Title, r.Status}})
	}
	return TableView{Title: title, Rows: rows}
}

// Node builds the heading and table.
func (t TableView) Node() view.Node {
	trs := make([]view.Node, 0, len(t.Rows))
	for _, r := range t.Rows {
		tds := make([]view.Node, 0, len(r.Cells))
		for _, c := range r.Cells {
			td := view.El("td", nil)
			if c != "" {
				td.Children = []view.Node{view.Text(c)}
			}
			tds = append(tds, td)
		}
		trs = append(trs, view.El("tr", nil, tds...).WithAttr("data-key", r.Key))
	}
	return view.El("div", nil,
		view.El("h3", []view.Style{view.S("margin", "0")}, view.Text(t.Title)),
		view.El("table", nil, view.El("tbody", nil, trs...)),
	).WithAttr("data-widget", "table")
}
