package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed presets.schema.json
var presetSchema []byte

type presetFile struct {
	Entities []map[string]interface{} `yaml:"entities"`
}

// LoadPresetFile reads preset entries from a YAML or JSON-with-comments file.
// Field types are checked against the preset schema; required keys are left
// to the preset registry so its errors name the offending entry.
func LoadPresetFile(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(data, filepath.Ext(path))
}

// ParsePresets decodes preset entries. ext selects the syntax: ".json" and
// ".jsonc" are stripped of comments first; anything else is read as YAML.
func ParsePresets(data []byte, ext string) ([]map[string]interface{}, error) {
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parse presets: empty document")
	}
	if err := validatePresets(doc); err != nil {
		return nil, err
	}
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return file.Entities, nil
}

func validatePresets(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(presetSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate presets: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid presets: %s", strings.Join(msgs, "; "))
}
