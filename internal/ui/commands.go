package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/atomicstack/pipeline-loader/internal/state"
	"github.com/atomicstack/pipeline-loader/internal/ui/command"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// actionResultMsg reports the outcome of a publish action.
type actionResultMsg struct {
	Info string
	Err  error
}

func copyPathAction(item state.PublishItem) tea.Cmd {
	return func() tea.Msg {
		if item.Folder || item.Publish == nil {
			return actionResultMsg{Err: errors.New("folders have no path to copy")}
		}
		path := strings.TrimSpace(item.Publish.Path)
		if path == "" {
			return actionResultMsg{Err: fmt.Errorf("%s has no path", item.Label)}
		}
		if err := writeClipboard(path); err != nil {
			return actionResultMsg{Err: fmt.Errorf("copy path: %w", err)}
		}
		return actionResultMsg{Info: fmt.Sprintf("Copied %s", path)}
	}
}

func (m *Model) copySelectedPath() tea.Cmd {
	item := m.publishes.SelectedPublish()
	if item == nil {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:      "copy-path:" + item.ID(),
		Label:   item.Label,
		Handler: copyPathAction,
		Item:    *item,
	})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}
