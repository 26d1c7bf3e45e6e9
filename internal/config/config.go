package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/app"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/loader"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envPresets       = "PIPELINE_LOADER_PRESETS"
	envDB            = "PIPELINE_LOADER_DB"
	envSeed          = "PIPELINE_LOADER_SEED"
	envContextProj   = "PIPELINE_LOADER_CONTEXT_PROJECT"
	envContextEntity = "PIPELINE_LOADER_CONTEXT_ENTITY"
	envContextStep   = "PIPELINE_LOADER_CONTEXT_STEP"
	envContextTask   = "PIPELINE_LOADER_CONTEXT_TASK"
	envContextUser   = "PIPELINE_LOADER_CONTEXT_USER"
	envWidth         = "PIPELINE_LOADER_WIDTH"
	envHeight        = "PIPELINE_LOADER_HEIGHT"
	envShowFooter    = "PIPELINE_LOADER_FOOTER"
	envVerbose       = "PIPELINE_LOADER_VERBOSE"
	envTrace         = "PIPELINE_LOADER_TRACE"
	envLogFile       = "PIPELINE_LOADER_LOG_FILE"

	defaultDB = "pipeline-loader.db"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("pipeline-loader", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	presets := fs.String("presets", envOrDefault(env, envPresets, ""), "preset file (.yaml, .yml, .json or .jsonc); built-in presets when empty")
	db := fs.String("db", envOrDefault(env, envDB, defaultDB), "path to the SQLite catalog")
	seed := fs.Bool("seed", envOrBool(env, envSeed, true), "fill an empty catalog with demo data")
	ctxProject := fs.String("context-project", envOrDefault(env, envContextProj, ""), "context project as Type:id")
	ctxEntity := fs.String("context-entity", envOrDefault(env, envContextEntity, ""), "context entity as Type:id (home target)")
	ctxStep := fs.String("context-step", envOrDefault(env, envContextStep, ""), "context pipeline step as Type:id")
	ctxTask := fs.String("context-task", envOrDefault(env, envContextTask, ""), "context task as Type:id")
	ctxUser := fs.String("context-user", envOrDefault(env, envContextUser, ""), "context user as Type:id")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key help footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	var ctx catalog.Context
	for _, ref := range []struct {
		flag  string
		value string
		dst   **catalog.EntityRef
	}{
		{"context-project", *ctxProject, &ctx.Project},
		{"context-entity", *ctxEntity, &ctx.Entity},
		{"context-step", *ctxStep, &ctx.Step},
		{"context-task", *ctxTask, &ctx.Task},
		{"context-user", *ctxUser, &ctx.User},
	} {
		parsed, err := catalog.ParseRef(ref.value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", ref.flag, err)
		}
		*ref.dst = parsed
	}

	entries := loader.DefaultPresets()
	if strings.TrimSpace(*presets) != "" {
		loaded, err := LoadPresetFile(*presets)
		if err != nil {
			return Config{}, err
		}
		entries = loaded
	}

	cfg := Config{
		App: app.Config{
			DBPath:      *db,
			Seed:        *seed,
			Presets:     entries,
			PresetsPath: *presets,
			Context:     ctx,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Verbose:     *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"presets":        *presets,
			"db":             *db,
			"seed":           strconv.FormatBool(*seed),
			"contextProject": *ctxProject,
			"contextEntity":  *ctxEntity,
			"contextStep":    *ctxStep,
			"contextTask":    *ctxTask,
			"contextUser":    *ctxUser,
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"verbose":        strconv.FormatBool(*verbose),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return fmt.Errorf("catalog path (-db) is required")
	}
	if len(cfg.App.Presets) == 0 {
		return fmt.Errorf("no presets configured")
	}
	if err := loader.ValidatePresets(cfg.App.Presets); err != nil {
		return err
	}
	return nil
}
