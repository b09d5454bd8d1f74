package docs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/panelkit/internal/domain/buildcfg"
	"github.com/okian/panelkit/internal/domain/widget"
	. "github.com/smartystreets/goconvey/convey"
)

func TestElements(t *testing.T) {
	Convey("Given a pages root", t, func() {
		root := newSite(t)
		r := NewRenderer(root, buildcfg.Default())
		ctx := context.Background()

		Convey("The index page resolves to prose and widget views", func() {
			src, err := SourceFor(root, filepath.Join(root, "index.mdx"))
			So(err, ShouldBeNil)
			So(src.Route, ShouldEqual, "/")

			els, err := r.Elements(ctx, src)
			So(err, ShouldBeNil)

			var gauges []widget.GaugeView
			var tables []widget.TableView
			prose := 0
			for _, e := range els {
				switch v := e.View.(type) {
				case widget.GaugeView:
					gauges = append(gauges, v)
				case widget.TableView:
					tables = append(tables, v)
				case nil:
					prose++
				}
			}
			So(prose, ShouldBeGreaterThan, 0)
			So(len(gauges), ShouldEqual, 1)
			So(gauges[0].Percent, ShouldEqual, 100.0)
			So(len(tables), ShouldEqual, 1)
			So(tables[0].Title, ShouldEqual, "Items")
			So(len(tables[0].Rows), ShouldEqual, 2)
			So(tables[0].Rows[1].Cells, ShouldResemble, [3]string{"b", "", ""})
		})

		Convey("An import outside the root resolves by default", func() {
			src, err := SourceFor(root, filepath.Join(root, "outside.mdx"))
			So(err, ShouldBeNil)
			els, err := r.Elements(ctx, src)
			So(err, ShouldBeNil)
			So(els, ShouldHaveLength, 1)
			So(els[0].View, ShouldResemble, widget.SummaryView{Velocity: "Velocity: 5 tasks", Updated: "Updated: 2024-01-01"})
		})

		Convey("An import outside the root is rejected when confined", func() {
			confined := NewRenderer(root, buildcfg.Config{PageExtensions: []string{"mdx"}})
			src, err := SourceFor(root, filepath.Join(root, "outside.mdx"))
			So(err, ShouldBeNil)
			_, err = confined.Elements(ctx, src)
			So(errors.Is(err, buildcfg.ErrExternalImport), ShouldBeTrue)
		})

		Convey("Script pages have no elements", func() {
			src, err := SourceFor(root, filepath.Join(root, "widget.tsx"))
			So(err, ShouldBeNil)
			_, err = r.Elements(ctx, src)
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file is reported", func() {
			_, err := SourceFor(root, filepath.Join(root, "nope.mdx"))
			So(errors.Is(err, ErrPageNotFound), ShouldBeTrue)
		})
	})
}
