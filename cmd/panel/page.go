package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/okian/panelkit/internal/adapters/docs"
	"github.com/okian/panelkit/internal/adapters/render/term"
	"github.com/okian/panelkit/internal/domain/widget"
	"github.com/okian/panelkit/pkg/metrics"
	"github.com/spf13/cobra"
)

const proseWrap = 80

func newPageCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "page <file>",
		Short: "Render a document page in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := o.pagesDir
			if rel, err := filepath.Rel(root, args[0]); err != nil || strings.HasPrefix(rel, "..") {
				root = filepath.Dir(args[0])
			}
			src, err := docs.SourceFor(root, args[0])
			if err != nil {
				return err
			}
			r := docs.NewRenderer(root, o.cfg.Build())
			if o.html {
				body, err := r.Render(cmd.Context(), src)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
				return err
			}
			els, err := r.Elements(cmd.Context(), src)
			if err != nil {
				return err
			}
			out, err := renderElements(els, o.renderer())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

// renderElements renders prose through glamour and widgets through tr.
func renderElements(els []docs.Element, tr *term.Renderer) (string, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(proseWrap),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	blocks := make([]string, 0, len(els))
	for _, e := range els {
		switch v := e.View.(type) {
		case nil:
			s, err := md.Render(e.Prose)
			if err != nil {
				return "", fmt.Errorf("render markdown: %w", err)
			}
			blocks = append(blocks, strings.TrimRight(s, "\n"))
		case widget.GaugeView:
			metrics.RecordWidgetRender("gauge", surfaceCLI)
			blocks = append(blocks, tr.Gauge(v))
		case widget.SummaryView:
			metrics.RecordWidgetRender("summary", surfaceCLI)
			blocks = append(blocks, tr.Summary(v))
		case widget.TableView:
			metrics.RecordWidgetRender("table", surfaceCLI)
			blocks = append(blocks, tr.Table(v))
		}
	}
	return term.Join(blocks...), nil
}
