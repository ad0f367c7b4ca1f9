package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldMap is the optional YAML document that tailors which source
// columns map onto normalized fields and which columns are harvested
// as notes.
//
//	columns:
//	  "Tariff Item": hs_code
//	note_fields:
//	  - item_description
//	  - import_policy_text
type FieldMap struct {
	Columns    map[string]string `yaml:"columns"`
	NoteFields []string          `yaml:"note_fields"`
}

// LoadFieldMap reads and parses the YAML file at path. An empty path
// returns a zero FieldMap, leaving the built-in defaults in effect.
func LoadFieldMap(path string) (FieldMap, error) {
	if path == "" {
		return FieldMap{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldMap{}, fmt.Errorf("read field map %q: %w", path, err)
	}
	var fm FieldMap
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return FieldMap{}, fmt.Errorf("parse field map %q: %w", path, err)
	}
	return fm, nil
}
