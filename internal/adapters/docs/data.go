package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadData decodes a data import by extension into plain Go values
// (map[string]any, []any, scalars).
func LoadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data %s: %w", path, err)
	}
	return DecodeData(filepath.Ext(path), raw)
}

// DecodeData decodes raw bytes according to ext (".json", ".yaml", ".yml",
// ".toml").
func DecodeData(ext string, raw []byte) (any, error) {
	var v any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		var m map[string]any
		if _, err := toml.Decode(string(raw), &m); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		v = m
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedData)
	}
	return v, nil
}
