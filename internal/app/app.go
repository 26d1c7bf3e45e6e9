package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/atomicstack/pipeline-loader/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	workerCount    = 2
	workerInterval = 50 * time.Millisecond
)

// Config describes user-provided application options.
type Config struct {
	DBPath      string
	Seed        bool
	Presets     []map[string]interface{}
	PresetsPath string
	Context     catalog.Context
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
}

// Run opens the catalog, starts the fetch worker and executes the Bubble Tea
// program until the user quits.
func Run(cfg Config) error {
	ctx := context.Background()
	cat, err := catalog.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()
	if cfg.Seed {
		seeded, err := cat.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if seeded {
			events.App.Seeded(cat.Path())
		}
	}

	worker := backend.NewWorker(cat, workerCount, workerInterval)
	defer worker.Stop()

	model, err := ui.NewModel(ui.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Presets:    cfg.Presets,
		Context:    cfg.Context,
	}, worker)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop(err.Error())
		return err
	}
	events.App.Stop("quit")
	return nil
}
