package main

import (
	"fmt"
	"io"

	"github.com/okian/panelkit/internal/adapters/docs"
	"github.com/okian/panelkit/internal/adapters/render/htmlout"
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/widget"
	"github.com/okian/panelkit/pkg/metrics"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

const surfaceCLI = "cli"

func newGaugeCmd(o *options) *cobra.Command {
	var value, label string
	cmd := &cobra.Command{
		Use:   "gauge",
		Short: "Render a value gauge clamped to [0,100]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var raw any
			if cmd.Flags().Changed("value") {
				raw = value
			}
			g := widget.Gauge(raw, label)
			metrics.RecordWidgetRender("gauge", surfaceCLI)
			if o.html {
				return writeHTML(cmd.OutOrStdout(), g)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), o.renderer().Gauge(g))
			return err
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "value to display; non-numeric input shows 0")
	cmd.Flags().StringVar(&label, "label", "", "caption (default \""+widget.DefaultGaugeLabel+"\")")
	return cmd
}

func newProgressCmd(o *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Render a progress summary from a json, yaml or toml file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p *model.ProgressRecord
			if file != "" {
				v, err := docs.LoadData(file)
				if err != nil {
					return err
				}
				m, err := cast.ToStringMapE(v)
				if err != nil {
					return fmt.Errorf("%s: progress must be an object: %w", file, err)
				}
				rec := model.ProgressFromMap(m)
				p = &rec
			}
			s := widget.Summary(p)
			metrics.RecordWidgetRender("summary", surfaceCLI)
			if o.html {
				return writeHTML(cmd.OutOrStdout(), s)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), o.renderer().Summary(s))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "progress record file")
	return cmd
}

func newTableCmd(o *options) *cobra.Command {
	var title, file string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render a table of records from a json, yaml or toml file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []model.DisplayRecord
			if file != "" {
				v, err := docs.LoadData(file)
				if err != nil {
					return err
				}
				rows = model.RecordsFromAny(rowsOf(v))
			}
			t := widget.Table(title, rows)
			metrics.RecordWidgetRender("table", surfaceCLI)
			if o.html {
				return writeHTML(cmd.OutOrStdout(), t)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), o.renderer().Table(t))
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "table heading")
	cmd.Flags().StringVarP(&file, "file", "f", "", "records file")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func writeHTML(w io.Writer, v docs.WidgetView) error {
	if err := htmlout.Render(w, v.Node()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// rowsOf accepts either a bare list or an object holding it under "rows".
// TOML files have no top-level arrays and always use the second form.
func rowsOf(v any) any {
	if m, err := cast.ToStringMapE(v); err == nil {
		return m["rows"]
	}
	return v
}
