package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/okian/panelkit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestGaugeCommand(t *testing.T) {
	Convey("Given the gauge command", t, func() {
		Convey("HTML output clamps the value", func() {
			out, err := run("gauge", "--value", "150", "--html")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Progress: 100%")
			So(out, ShouldContainSubstring, `data-widget="gauge"`)
		})

		Convey("Terminal output shows the label line", func() {
			out, err := run("gauge", "--value", "42", "--label", "Focus")
			So(err, ShouldBeNil)
			So(ansi.Strip(out), ShouldContainSubstring, "Focus: 42%")
		})

		Convey("A missing value renders as zero", func() {
			out, err := run("gauge", "--html")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Progress: 0%")
		})
	})
}

func TestProgressCommand(t *testing.T) {
	Convey("Given the progress command", t, func() {
		dir := t.TempDir()

		Convey("A YAML record renders both lines", func() {
			f := write(t, dir, "p.yaml", "velocity:\n  weekly: 5\n  unit: tasks\nupdatedAt: today\n")
			out, err := run("progress", "--file", f)
			So(err, ShouldBeNil)
			plain := ansi.Strip(out)
			So(plain, ShouldContainSubstring, "Velocity: 5 tasks")
			So(plain, ShouldContainSubstring, "Updated: today")
		})

		Convey("No file renders placeholders", func() {
			out, err := run("progress")
			So(err, ShouldBeNil)
			So(ansi.Strip(out), ShouldContainSubstring, "Updated: ?")
		})

		Convey("A list is not a progress record", func() {
			f := write(t, dir, "p.json", "[1,2]")
			_, err := run("progress", "--file", f)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTableCommand(t *testing.T) {
	Convey("Given the table command", t, func() {
		dir := t.TempDir()

		Convey("TOML rows render in file order", func() {
			f := write(t, dir, "rows.toml", "[[rows]]\nid = \"z\"\ntitle = \"Last\"\n\n[[rows]]\nid = \"a\"\nstatus = \"open\"\n")
			out, err := run("table", "--title", "Queue", "--file", f, "--html")
			So(err, ShouldBeNil)
			So(strings.Index(out, `data-key="z"`), ShouldBeLessThan, strings.Index(out, `data-key="a"`))
			So(out, ShouldContainSubstring, "<td></td>")
		})

		Convey("JSON rows render in the terminal", func() {
			f := write(t, dir, "rows.json", `[{"id":"1","title":"One","status":"done"}]`)
			out, err := run("table", "-t", "Tasks", "-f", f)
			So(err, ShouldBeNil)
			plain := ansi.Strip(out)
			So(plain, ShouldContainSubstring, "Tasks")
			So(plain, ShouldContainSubstring, "One")
			So(plain, ShouldContainSubstring, "STATUS")
		})

		Convey("The title flag is required", func() {
			_, err := run("table")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPageAndBuildCommands(t *testing.T) {
	Convey("Given a pages directory", t, func() {
		pages := t.TempDir()
		write(t, pages, "data/rows.json", `[{"id":"a","title":"Alpha"}]`)
		index := write(t, pages, "index.mdx",
			"import rows from \"./data/rows.json\"\n\n# Status\n\n<ValueGauge value={64} label=\"Focus\" />\n<TabularView title=\"Rows\" rows={rows} />\n")
		write(t, pages, "guide/intro.mdx", "# Intro\n\nHello.\n")

		Convey("page renders prose and widgets for the terminal", func() {
			out, err := run("page", "--pages", pages, index)
			So(err, ShouldBeNil)
			plain := ansi.Strip(out)
			So(plain, ShouldContainSubstring, "Status")
			So(plain, ShouldContainSubstring, "Focus: 64%")
			So(plain, ShouldContainSubstring, "Alpha")
		})

		Convey("page --html renders the page body", func() {
			out, err := run("page", "--pages", pages, "--html", index)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `class="panel-valuegauge"`)
		})

		Convey("build writes every page and the stylesheet", func() {
			outDir := filepath.Join(t.TempDir(), "site")
			out, err := run("build", "--pages", pages, "--out", outDir)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "wrote 2 pages")

			home, err := os.ReadFile(filepath.Join(outDir, "index.html"))
			So(err, ShouldBeNil)
			So(string(home), ShouldContainSubstring, "Focus: 64%")
			So(string(home), ShouldContainSubstring, `href="/guide/intro"`)

			_, err = os.Stat(filepath.Join(outDir, "guide", "intro", "index.html"))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(outDir, "static", "panelkit.css"))
			So(err, ShouldBeNil)
		})
	})
}
