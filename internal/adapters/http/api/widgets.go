// Package api declares the widget HTTP contracts and route registration.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/panelkit/internal/adapters/render/htmlout"
	"github.com/okian/panelkit/internal/domain/model"
	"github.com/okian/panelkit/internal/domain/view"
	"github.com/okian/panelkit/internal/domain/widget"
	"github.com/okian/panelkit/pkg/metrics"
	"github.com/spf13/cast"
)

const (
	maxBodyBytes = 1 << 20
	formatJSON   = "json"
	surfaceHTTP  = "http"
)

// tableRequest mirrors the OpenAPI schema for POST /widgets/table.
type tableRequest struct {
	Title *string               `json:"title"`
	Rows  []model.DisplayRecord `json:"rows"`
}

// treeResponse is returned when format=json.
type treeResponse struct {
	Widget string    `json:"widget"`
	Text   string    `json:"text"`
	Tree   view.Node `json:"tree"`
}

// WidgetHandler renders widgets as HTML fragments or JSON trees.
type WidgetHandler struct{}

// NewWidgetHandler creates a widget handler.
func NewWidgetHandler() *WidgetHandler {
	return &WidgetHandler{}
}

// HandleGauge handles GET /widgets/gauge?value=&label=.
func (h *WidgetHandler) HandleGauge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	q := r.URL.Query()
	var raw any
	if q.Has("value") {
		raw = q.Get("value")
	}
	g := widget.Gauge(raw, q.Get("label"))
	recordClamp(raw, g)
	h.respond(w, r, "gauge", g.Text(), g.Node())
}

// HandleProgress handles POST /widgets/progress. An empty body is an empty
// record.
func (h *WidgetHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var p model.ProgressRecord
	if err := decodeBody(r, &p); err != nil {
		writeBodyError(w, err)
		return
	}
	s := widget.Summary(&p)
	h.respond(w, r, "summary", s.Velocity+"\n"+s.Updated, s.Node())
}

// HandleTable handles POST /widgets/table.
func (h *WidgetHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req tableRequest
	if err := decodeBody(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if req.Title == nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingTitle)
		return
	}
	t := widget.Table(*req.Title, req.Rows)
	h.respond(w, r, "table", t.Title, t.Node())
}

func (h *WidgetHandler) respond(w http.ResponseWriter, r *http.Request, name, text string, n view.Node) {
	metrics.RecordWidgetRender(name, surfaceHTTP)
	if strings.EqualFold(r.URL.Query().Get("format"), formatJSON) {
		writeJSON(w, http.StatusOK, treeResponse{Widget: name, Text: text, Tree: n})
		return
	}
	out, err := htmlout.String(n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if len(body) > maxBodyBytes {
		return ErrBodyTooLarge
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

func writeBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err)
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", err)
}

// recordClamp counts gauge inputs that were substituted or clamped.
func recordClamp(raw any, g widget.GaugeView) {
	if raw == nil {
		return
	}
	v, err := cast.ToFloat64E(raw)
	switch {
	case err != nil:
		metrics.RecordGaugeClamped("not_numeric")
	case v < widget.GaugeMin:
		metrics.RecordGaugeClamped("below_min")
	case v > widget.GaugeMax:
		metrics.RecordGaugeClamped("above_max")
	case v != g.Percent:
		metrics.RecordGaugeClamped("not_numeric")
	}
}
