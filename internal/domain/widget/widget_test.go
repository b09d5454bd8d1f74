package widget_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/view"
	"github.com/okian/panelkit/internal/domain/widget"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGauge(t *testing.T) {
	Convey("Given gauge inputs", t, func() {
		Convey("When no value and no label are given", func() {
			g := widget.Gauge(nil, "")

			Convey("Then it shows 0% under the default label", func() {
				So(g.Text(), ShouldEqual, "Progress: 0%")
				So(g.Label, ShouldEqual, "Progress")
			})
		})

		Convey("When the value is above range", func() {
			So(widget.Gauge(150, "").Text(), ShouldEqual, "Progress: 100%")
		})

		Convey("When the value is below range", func() {
			So(widget.Gauge(-5, "").Text(), ShouldEqual, "Progress: 0%")
		})

		Convey("When the value is not numeric", func() {
			So(widget.Gauge("abc", "").Text(), ShouldEqual, "Progress: 0%")
			So(widget.Gauge(math.NaN(), "").Percent, ShouldEqual, 0.0)
			So(widget.Gauge(struct{}{}, "").Percent, ShouldEqual, 0.0)
		})

		Convey("When the value is a numeric string or a fraction", func() {
			So(widget.Gauge("42", "Focus").Text(), ShouldEqual, "Focus: 42%")
			So(widget.Gauge(42.5, "").Text(), ShouldEqual, "Progress: 42.5%")
		})

		Convey("When the value is infinite", func() {
			So(widget.Gauge(math.Inf(1), "").Percent, ShouldEqual, 100.0)
			So(widget.Gauge(math.Inf(-1), "").Percent, ShouldEqual, 0.0)
		})

		Convey("Then every input stays within [0,100]", func() {
			for _, v := range []any{-1e9, -0.1, 0, 0.1, 50, 99.9, 100, 100.1, 1e9, "7", true, nil} {
				p := widget.Gauge(v, "").Percent
				So(p, ShouldBeGreaterThanOrEqualTo, 0.0)
				So(p, ShouldBeLessThanOrEqualTo, 100.0)
			}
		})

		Convey("Then the fill width tracks the percent", func() {
			n := widget.Gauge(30, "").Node()
			bar := n.Children[1]
			fill := bar.Children[0]
			So(fill.StyleAttr(), ShouldEqual, "width:30%;height:8px")
			So(bar.StyleAttr(), ShouldEqual, "height:8px;background:#eee")
			So(n.Children[0].TextContent(), ShouldEqual, "Progress: 30%")
		})
	})
}

func TestSummary(t *testing.T) {
	Convey("Given progress records", t, func() {
		Convey("When the record is empty", func() {
			s := widget.Summary(&model.ProgressRecord{})

			Convey("Then placeholders are substituted", func() {
				So(s.Velocity, ShouldEqual, "Velocity: ? ")
				So(s.Updated, ShouldEqual, "Updated: ?")
			})
		})

		Convey("When the record is nil", func() {
			So(widget.Summary(nil), ShouldResemble, widget.Summary(&model.ProgressRecord{}))
		})

		Convey("When every field is present", func() {
			s := widget.Summary(&model.ProgressRecord{
				Velocity:  &model.Velocity{Weekly: model.Float(5), Unit: model.String("tasks")},
				UpdatedAt: model.String("2024-01-01"),
			})

			Convey("Then the lines read naturally", func() {
				So(s.Velocity, ShouldEqual, "Velocity: 5 tasks")
				So(s.Updated, ShouldEqual, "Updated: 2024-01-01")
			})

			Convey("And the tree carries both lines", func() {
				n := s.Node()
				So(n.Children, ShouldHaveLength, 2)
				So(n.TextContent(), ShouldEqual, "Velocity: 5 tasksUpdated: 2024-01-01")
			})
		})

		Convey("When only the unit is present", func() {
			s := widget.Summary(&model.ProgressRecord{Velocity: &model.Velocity{Unit: model.String("pts")}})
			So(s.Velocity, ShouldEqual, "Velocity: ? pts")
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given table inputs", t, func() {
		Convey("When there are no rows", func() {
			tv := widget.Table("Items", nil)
			n := tv.Node()

			Convey("Then only the heading is rendered", func() {
				So(n.Find("h3")[0].TextContent(), ShouldEqual, "Items")
				So(n.Find("tr"), ShouldBeEmpty)
			})
		})

		Convey("When a row is missing title and status", func() {
			tv := widget.Table("Items", []model.DisplayRecord{
				{ID: "a", Title: "Alpha", Status: "done"},
				{ID: "b", Extra: map[string]any{"secret": "hidden"}},
			})
			trs := tv.Node().Find("tr")

			Convey("Then rows keep caller order", func() {
				So(trs, ShouldHaveLength, 2)
				So(trs[0].Attrs[0].Value, ShouldEqual, "a")
				So(trs[1].Attrs[0].Value, ShouldEqual, "b")
			})

			Convey("And absent cells are blank", func() {
				tds := trs[1].Find("td")
				So(tds, ShouldHaveLength, 3)
				So(tds[0].TextContent(), ShouldEqual, "b")
				So(tds[1].TextContent(), ShouldEqual, "")
				So(tds[2].TextContent(), ShouldEqual, "")
			})

			Convey("And extra fields are not shown", func() {
				So(tv.Node().TextContent(), ShouldNotContainSubstring, "hidden")
			})
		})

		Convey("When ids repeat", func() {
			tv := widget.Table("Dup", []model.DisplayRecord{{ID: "x"}, {ID: "x"}})
			So(tv.Rows, ShouldHaveLength, 2)
		})
	})
}

func TestRenderIsIdempotent(t *testing.T) {
	Convey("Given identical props rendered twice", t, func() {
		progress := &model.ProgressRecord{UpdatedAt: model.String("today")}
		rows := []model.DisplayRecord{{ID: "a", Title: "Alpha"}, {ID: "b"}}

		pairs := [][2]view.Node{
			{widget.Gauge(64, "x").Node(), widget.Gauge(64, "x").Node()},
			{widget.Summary(progress).Node(), widget.Summary(progress).Node()},
			{widget.Table("T", rows).Node(), widget.Table("T", rows).Node()},
		}

		Convey("Then the trees are structurally identical", func() {
			for _, p := range pairs {
				So(view.Equal(p[0], p[1]), ShouldBeTrue)
				So(cmp.Diff(p[0], p[1]), ShouldBeEmpty)
			}
		})
	})
}
