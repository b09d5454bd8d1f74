package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/panelkit/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.PagesDir, convey.ShouldEqual, "pages")
			convey.So(cfg.BuildConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.PageExtensions, convey.ShouldResemble, []string{"mdx", "tsx", "ts", "js"})
			convey.So(cfg.ExternalDir, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then Build exposes normalized build options", func() {
			cfg.PageExtensions = []string{".MDX", "mdx", "md"}
			cfg.ExternalDir = false
			b := cfg.Build()
			convey.So(b.PageExtensions, convey.ShouldResemble, []string{"mdx", "md"})
			convey.So(b.ExternalDir, convey.ShouldBeFalse)
		})
	})
}
