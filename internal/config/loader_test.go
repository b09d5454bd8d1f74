package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/panelkit/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"PANELKIT_CONFIG",
	"PANELKIT_ADDR",
	"PANELKIT_PAGES_DIR",
	"PANELKIT_PAGE_EXTENSIONS",
	"PANELKIT_EXTERNAL_DIR",
	"PANELKIT_BUILD_CONCURRENCY",
	"PANELKIT_WATCH",
	"PANELKIT_WATCH_DIRS",
	"PANELKIT_LOG_FORMAT",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panelkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PageExtensions, convey.ShouldResemble, []string{"mdx", "tsx", "ts", "js"})
				convey.So(cfg.ExternalDir, convey.ShouldBeTrue)
				convey.So(cfg.Watch, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PANELKIT_ADDR", ":8080")
			_ = os.Setenv("PANELKIT_PAGES_DIR", "site")
			_ = os.Setenv("PANELKIT_PAGE_EXTENSIONS", "mdx, md")
			_ = os.Setenv("PANELKIT_EXTERNAL_DIR", "true")
			_ = os.Setenv("PANELKIT_BUILD_CONCURRENCY", "3")
			_ = os.Setenv("PANELKIT_WATCH_DIRS", "../shared,../data")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PagesDir, convey.ShouldEqual, "site")
				convey.So(cfg.PageExtensions, convey.ShouldResemble, []string{"mdx", "md"})
				convey.So(cfg.ExternalDir, convey.ShouldBeTrue)
				convey.So(cfg.BuildConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.WatchDirs, convey.ShouldResemble, []string{"../shared", "../data"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
page_extensions: ["md"]
external_dir: true
watch: false
`)
			_ = os.Setenv("PANELKIT_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the file replaces the defaults it names", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PageExtensions, convey.ShouldResemble, []string{"md"})
				convey.So(cfg.ExternalDir, convey.ShouldBeTrue)
				convey.So(cfg.Watch, convey.ShouldBeFalse)
				convey.So(cfg.PagesDir, convey.ShouldEqual, "pages")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, "addr: \":9090\"\npages_dir: docs\n")
			_ = os.Setenv("PANELKIT_CONFIG", path)
			_ = os.Setenv("PANELKIT_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PagesDir, convey.ShouldEqual, "docs")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("PANELKIT_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PANELKIT_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PANELKIT_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When page extensions are blanked out", func() {
			_ = os.Setenv("PANELKIT_PAGE_EXTENSIONS", " , ")

			_, err := config.Load(ctx)

			convey.Convey("Then the build options are rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When external imports are switched off in the environment", func() {
			_ = os.Setenv("PANELKIT_EXTERNAL_DIR", "false")

			cfg, err := config.Load(ctx)

			convey.Convey("Then the default is overridden", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ExternalDir, convey.ShouldBeFalse)
				convey.So(cfg.Build().ExternalDir, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the log format is unknown", func() {
			_ = os.Setenv("PANELKIT_LOG_FORMAT", "xml")

			_, err := config.Load(ctx)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrLogFormat), convey.ShouldBeTrue)
			})
		})
	})
}
