package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/panelkit/internal/adapters/docs"
	"github.com/okian/panelkit/internal/adapters/http/site"
	"github.com/okian/panelkit/pkg/logger"
	"github.com/spf13/cobra"
)

const stylesheet = "panelkit.css"

func newBuildCmd(o *options) *cobra.Command {
	var outDir, basePath string
	var strict bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every page to static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("out") {
				outDir = o.cfg.OutDir
			}
			b, err := docs.NewBuilder(o.pagesDir, o.cfg.Build(),
				docs.WithConcurrency(o.cfg.BuildConcurrency),
				docs.WithLogger(logger.Named("build")),
			)
			if err != nil {
				return err
			}
			res, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			layout := docs.Layout{BasePath: basePath, StaticPrefix: basePath + "/static"}
			n, err := layout.WriteStatic(outDir, res.Pages)
			if err != nil {
				return err
			}
			if err := writeStylesheet(outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s (%d failed)\n", n, outDir, res.Failed)
			if strict && res.Failed > 0 {
				return fmt.Errorf("%d pages failed to build", res.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().StringVar(&basePath, "base", "", "URL prefix the site is served under")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any page fails")
	return cmd
}

// writeStylesheet copies the embedded site stylesheet to outDir/static.
func writeStylesheet(outDir string) error {
	in, err := site.FS().Open(stylesheet)
	if err != nil {
		return fmt.Errorf("open stylesheet: %w", err)
	}
	defer in.Close()

	dir := filepath.Join(outDir, "static")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	out, err := os.Create(filepath.Join(dir, stylesheet))
	if err != nil {
		return fmt.Errorf("create stylesheet: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return out.Close()
}
