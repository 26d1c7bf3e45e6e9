package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
)

// ErrUnknownPreset is returned when a tab name does not match any preset.
var ErrUnknownPreset = errors.New("unknown preset")

// requiredKeys are checked in this order; the first miss is reported.
var requiredKeys = []string{"caption", "entity_type", "hierarchy", "filters"}

// ConfigurationError reports an invalid preset entry.
type ConfigurationError struct {
	Key    string
	Index  int
	Entry  map[string]interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing required key"
	}
	return fmt.Sprintf("preset entry %d: %s %q in %v", e.Index, reason, e.Key, e.Entry)
}

// PresetConfig is a validated preset entry with context tokens resolved.
type PresetConfig struct {
	Caption    string
	EntityType string
	Hierarchy  []string
	Filters    [][]interface{}
}

// Query returns the catalog query the preset's tree is built from.
func (p PresetConfig) Query() catalog.EntityQuery {
	return catalog.EntityQuery{Type: p.EntityType, Filters: p.Filters, Hierarchy: p.Hierarchy}
}

// PresetFactory builds the tree model and view for one preset.
type PresetFactory interface {
	Build(cfg PresetConfig) (TreeModel, TreeView, error)
}

// PresetFactoryFunc adapts a func to PresetFactory.
type PresetFactoryFunc func(cfg PresetConfig) (TreeModel, TreeView, error)

func (f PresetFactoryFunc) Build(cfg PresetConfig) (TreeModel, TreeView, error) {
	return f(cfg)
}

// Preset is one tab: an entity grouping with its own tree model and view.
type Preset struct {
	Name       string
	EntityType string
	Config     PresetConfig
	Model      TreeModel
	View       TreeView
}

// Registry holds the presets in configuration order.
type Registry struct {
	order   []string
	presets map[string]*Preset
}

// LoadPresets validates entries, resolves context tokens in their filters
// and builds one tree model and view per entry. Each model's initial load is
// issued before returning.
func LoadPresets(entries []map[string]interface{}, ctx catalog.Context, factory PresetFactory) (*Registry, error) {
	if factory == nil {
		return nil, errors.New("preset factory is required")
	}
	reg := &Registry{presets: make(map[string]*Preset, len(entries))}
	for i, entry := range entries {
		cfg, err := parseEntry(i, entry, ctx)
		if err != nil {
			return nil, err
		}
		if _, dup := reg.presets[cfg.Caption]; dup {
			return nil, &ConfigurationError{Key: "caption", Index: i, Entry: entry, Reason: "duplicate value for"}
		}
		model, view, err := factory.Build(cfg)
		if err != nil {
			return nil, fmt.Errorf("build preset %q: %w", cfg.Caption, err)
		}
		reg.order = append(reg.order, cfg.Caption)
		reg.presets[cfg.Caption] = &Preset{
			Name:       cfg.Caption,
			EntityType: cfg.EntityType,
			Config:     cfg,
			Model:      model,
			View:       view,
		}
	}
	for _, name := range reg.order {
		reg.presets[name].Model.LoadData()
	}
	events.App.Presets(reg.Names())
	return reg, nil
}

// ValidatePresets checks every entry the way LoadPresets does, without
// building trees, so a bad preset file is reported before anything starts.
func ValidatePresets(entries []map[string]interface{}) error {
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		cfg, err := parseEntry(i, entry, catalog.Context{})
		if err != nil {
			return err
		}
		if _, dup := seen[cfg.Caption]; dup {
			return &ConfigurationError{Key: "caption", Index: i, Entry: entry, Reason: "duplicate value for"}
		}
		seen[cfg.Caption] = struct{}{}
	}
	return nil
}

// DefaultPresets are used when no preset file is configured.
func DefaultPresets() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"caption":     "Assets",
			"entity_type": "Asset",
			"hierarchy":   []interface{}{"sg_asset_type", "code"},
			"filters":     []interface{}{},
		},
		{
			"caption":     "Shots",
			"entity_type": "Shot",
			"hierarchy":   []interface{}{"sg_sequence", "code"},
			"filters":     []interface{}{},
		},
		{
			"caption":     "Tasks",
			"entity_type": "Task",
			"hierarchy":   []interface{}{"entity", "step", "code"},
			"filters":     []interface{}{},
		},
	}
}

func parseEntry(index int, entry map[string]interface{}, ctx catalog.Context) (PresetConfig, error) {
	for _, key := range requiredKeys {
		if _, ok := entry[key]; !ok {
			return PresetConfig{}, &ConfigurationError{Key: key, Index: index, Entry: entry}
		}
	}
	invalid := func(key, reason string) error {
		return &ConfigurationError{Key: key, Index: index, Entry: entry, Reason: reason}
	}

	var cfg PresetConfig
	caption, ok := entry["caption"].(string)
	if !ok || strings.TrimSpace(caption) == "" {
		return cfg, invalid("caption", "expected non-empty string for")
	}
	entityType, ok := entry["entity_type"].(string)
	if !ok || strings.TrimSpace(entityType) == "" {
		return cfg, invalid("entity_type", "expected non-empty string for")
	}
	hierarchy, ok := stringList(entry["hierarchy"])
	if !ok {
		return cfg, invalid("hierarchy", "expected list of field names for")
	}
	filters, ok := filterList(entry["filters"])
	if !ok {
		return cfg, invalid("filters", "expected list of [field, operator, value] for")
	}
	for i, f := range filters {
		filters[i] = resolveTokens(f, ctx).([]interface{})
	}
	cfg.Caption = caption
	cfg.EntityType = entityType
	cfg.Hierarchy = hierarchy
	cfg.Filters = filters
	return cfg, nil
}

func stringList(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func filterList(value interface{}) ([][]interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case [][]interface{}:
		out := make([][]interface{}, len(v))
		for i, f := range v {
			out[i] = append([]interface{}(nil), f...)
		}
		return out, true
	case []interface{}:
		out := make([][]interface{}, 0, len(v))
		for _, item := range v {
			f, ok := item.([]interface{})
			if !ok {
				return nil, false
			}
			out = append(out, append([]interface{}(nil), f...))
		}
		return out, true
	}
	return nil, false
}

// resolveTokens replaces {context.*} strings anywhere in value with the link
// of the matching context entity, or nil when that part of the context is
// unset.
func resolveTokens(value interface{}, ctx catalog.Context) interface{} {
	switch v := value.(type) {
	case string:
		ref, isToken := contextToken(v, ctx)
		if !isToken {
			return v
		}
		if ref == nil {
			return nil
		}
		return ref.Link()
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = resolveTokens(item, ctx)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = resolveTokens(item, ctx)
		}
		return out
	}
	return value
}

func contextToken(s string, ctx catalog.Context) (*catalog.EntityRef, bool) {
	switch strings.TrimSpace(s) {
	case "{context.entity}":
		return ctx.Entity, true
	case "{context.project}":
		return ctx.Project, true
	case "{context.step}":
		return ctx.Step, true
	case "{context.task}":
		return ctx.Task, true
	case "{context.user}":
		return ctx.User, true
	}
	return nil, false
}

// Get returns the named preset or nil.
func (r *Registry) Get(name string) *Preset {
	if r == nil {
		return nil
	}
	return r.presets[name]
}

// Names lists preset names in configuration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// All lists presets in configuration order.
func (r *Registry) All() []*Preset {
	if r == nil {
		return nil
	}
	out := make([]*Preset, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.presets[name])
	}
	return out
}

// First returns the first configured preset.
func (r *Registry) First() *Preset {
	if r == nil || len(r.order) == 0 {
		return nil
	}
	return r.presets[r.order[0]]
}

// Len returns the number of presets.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
