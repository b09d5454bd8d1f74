// Package model contains the records widgets are rendered from.
//
// Records are built by the caller for a single render and are treated as
// read-only by every widget.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Reserved DisplayRecord keys. Everything else lands in Extra.
const (
	keyID     = "id"
	keyTitle  = "title"
	keyStatus = "status"
)

// DisplayRecord is one row of a TabularView.
type DisplayRecord struct {
	ID     string // row identity; uniqueness is the caller's concern
	Title  string // empty when absent
	Status string // empty when absent

	// Extra holds any other decoded fields. It is carried through untouched
	// and never rendered.
	Extra map[string]any
}

// Record builds a DisplayRecord from a loosely typed map, the shape every
// data source (JSON, YAML, TOML, query params) decodes to.
func Record(fields map[string]any) DisplayRecord {
	var r DisplayRecord
	for k, v := range fields {
		switch k {
		case keyID:
			r.ID = cast.ToString(v)
		case keyTitle:
			r.Title = cast.ToString(v)
		case keyStatus:
			r.Status = cast.ToString(v)
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[k] = v
		}
	}
	return r
}

// Fields returns the record as a flat map, Extra included.
func (r DisplayRecord) Fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+3)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[keyID] = r.ID
	if r.Title != "" {
		out[keyTitle] = r.Title
	}
	if r.Status != "" {
		out[keyStatus] = r.Status
	}
	return out
}

// UnmarshalJSON keeps unknown keys in Extra.
func (r *DisplayRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode display record: %w", err)
	}
	*r = Record(fields)
	return nil
}

// MarshalJSON flattens Extra back next to the known keys.
func (r DisplayRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// UnmarshalYAML keeps unknown keys in Extra.
func (r *DisplayRecord) UnmarshalYAML(value *yaml.Node) error {
	var fields map[string]any
	if err := value.Decode(&fields); err != nil {
		return fmt.Errorf("decode display record: %w", err)
	}
	*r = Record(fields)
	return nil
}

// UnmarshalTOML satisfies toml.Unmarshaler; the decoder hands over the raw
// table as a map.
func (r *DisplayRecord) UnmarshalTOML(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("decode display record: %w: got %T", ErrNotATable, data)
	}
	*r = Record(fields)
	return nil
}

// Velocity is the throughput part of a ProgressRecord.
type Velocity struct {
	Weekly *float64 `json:"weekly,omitempty" yaml:"weekly,omitempty" toml:"weekly,omitempty"`
	Unit   *string  `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty"`
}

// ProgressRecord is a session progress snapshot. Every field is optional.
type ProgressRecord struct {
	FocusScore *float64  `json:"focusScore,omitempty" yaml:"focusScore,omitempty" toml:"focusScore,omitempty"`
	Velocity   *Velocity `json:"velocity,omitempty" yaml:"velocity,omitempty" toml:"velocity,omitempty"`
	UpdatedAt  *string   `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty" toml:"updatedAt,omitempty"`
}

// ProgressFromMap converts a loosely typed map (typically a decoded data
// import) into a ProgressRecord. Fields that cannot be coerced are left
// absent.
func ProgressFromMap(fields map[string]any) ProgressRecord {
	var p ProgressRecord
	if v, ok := fields["focusScore"]; ok {
		if f, err := cast.ToFloat64E(v); err == nil {
			p.FocusScore = &f
		}
	}
	if v, ok := fields["updatedAt"]; ok && v != nil {
		s := cast.ToString(v)
		p.UpdatedAt = &s
	}
	if raw, ok := fields["velocity"]; ok {
		if vm, err := cast.ToStringMapE(raw); err == nil {
			vel := Velocity{}
			if w, ok := vm["weekly"]; ok {
				if f, err := cast.ToFloat64E(w); err == nil {
					vel.Weekly = &f
				}
			}
			if u, ok := vm["unit"]; ok && u != nil {
				s := cast.ToString(u)
				vel.Unit = &s
			}
			p.Velocity = &vel
		}
	}
	return p
}

// RecordsFromAny converts a decoded list (JSON array, YAML sequence, TOML
// array of tables) into DisplayRecords. Non-map entries are skipped.
func RecordsFromAny(v any) []DisplayRecord {
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	out := make([]DisplayRecord, 0, len(items))
	for _, item := range items {
		fields, err := cast.ToStringMapE(item)
		if err != nil {
			continue
		}
		out = append(out, Record(fields))
	}
	return out
}

// Float and String are helpers for building optional fields inline.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }
