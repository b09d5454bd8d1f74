package main

import (
	"github.com/okian/panelkit/internal/adapters/render/term"
	"github.com/okian/panelkit/internal/config"
	"github.com/okian/panelkit/pkg/logger"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	html     bool
	width    int
	pagesDir string
	cfg      *config.Config
}

func (o *options) renderer() *term.Renderer {
	return term.New(term.WithWidth(o.width))
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "panel <command>",
		Short:         "Render panelkit widgets and pages",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			o.cfg = cfg
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				o.width = cfg.TermWidth
			}
			if !cmd.Flags().Changed("pages") {
				o.pagesDir = cfg.PagesDir
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&o.html, "html", false, "print HTML instead of terminal output")
	cmd.PersistentFlags().IntVar(&o.width, "width", 40, "gauge bar width in cells")
	cmd.PersistentFlags().StringVar(&o.pagesDir, "pages", "pages", "pages root")

	cmd.AddCommand(
		newGaugeCmd(o),
		newProgressCmd(o),
		newTableCmd(o),
		newPageCmd(o),
		newBuildCmd(o),
	)
	return cmd
}
