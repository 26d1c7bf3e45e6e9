package ui

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(events <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) waitForBackend() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	events := m.backend.Events()
	if events == nil {
		return nil
	}
	return waitForBackendEvent(events)
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	return m.waitForBackend()
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent hands the event to the dispatcher, which fills the
// requesting store, then refreshes the panes showing that store.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind()] = evt.Err
	if evt.Err != nil {
		target := evt.Request.Target()
		if target == "" {
			target = evt.Kind().String()
		}
		m.backendLastErr = fmt.Sprintf("%s: %v", target, evt.Err)
		logging.Error(fmt.Errorf("fetch %s: %w", target, evt.Err))
	}

	res := m.dispatcher.Handle(evt)
	if res.Stale {
		return
	}
	if res.TreeUpdated != "" {
		if view := m.trees[res.TreeUpdated]; view != nil {
			view.sync()
		}
	}
	if res.TypesUpdated || res.PublishesUpdated {
		m.syncPanes()
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
