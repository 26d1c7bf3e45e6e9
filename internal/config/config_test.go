package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DBPath != defaultDB || !cfg.App.Seed || !cfg.App.ShowFooter {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if len(cfg.App.Presets) != 3 {
		t.Fatalf("expected built-in presets, got %d", len(cfg.App.Presets))
	}
	if cfg.App.Context.Entity != nil {
		t.Fatalf("expected empty context")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		envDB + "=/tmp/env.db",
		envWidth + "=100",
		envTrace + "=true",
		envContextEntity + "=Shot:100",
		"garbage",
	}
	cfg, err := LoadArgs([]string{"-db", "/tmp/flag.db", "-context-user", "HumanUser:5"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DBPath != "/tmp/flag.db" {
		t.Fatalf("expected flag to win, got %s", cfg.App.DBPath)
	}
	if cfg.App.Width != 100 || !cfg.Logging.Trace {
		t.Fatalf("expected env values, got width %d trace %v", cfg.App.Width, cfg.Logging.Trace)
	}
	if e := cfg.App.Context.Entity; e == nil || e.Type != "Shot" || e.ID != 100 {
		t.Fatalf("unexpected context entity %+v", e)
	}
	if u := cfg.App.Context.User; u == nil || u.ID != 5 {
		t.Fatalf("unexpected context user %+v", u)
	}
	if cfg.Flags["contextEntity"] != "Shot:100" || cfg.Flags["db"] != "/tmp/flag.db" {
		t.Fatalf("unexpected flags map %v", cfg.Flags)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-4"},
		{"-context-entity", "Shot"},
		{"-presets", filepath.Join("testdata", "missing.yaml")},
		{"-unknown"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLoadArgsPresetFile(t *testing.T) {
	cfg, err := LoadArgs([]string{"-presets", filepath.Join("testdata", "presets.yaml")}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.App.Presets) != 2 || cfg.App.Presets[1]["caption"] != "My Tasks" {
		t.Fatalf("unexpected presets %+v", cfg.App.Presets)
	}
	if !strings.HasSuffix(cfg.App.PresetsPath, "presets.yaml") {
		t.Fatalf("expected presets path recorded, got %q", cfg.App.PresetsPath)
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs(nil, nil)
	cfg.App.DBPath = " "
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for blank db path")
	}
	cfg.App.DBPath = "x.db"
	cfg.App.Presets = nil
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error without presets")
	}
	cfg.App.Presets = []map[string]interface{}{{"caption": "Shots", "entity_type": "Shot"}}
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "hierarchy") {
		t.Fatalf("expected preset entry error naming hierarchy, got %v", err)
	}
}
