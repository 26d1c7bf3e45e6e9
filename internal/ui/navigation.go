package ui

import (
	"github.com/atomicstack/pipeline-loader/internal/logging"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.searching {
		if handled, cmd := m.handleSearchKey(keyMsg); handled {
			return cmd
		}
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(keyMsg, m.keys.NextPane):
		m.cycleFocus(1)
		return nil
	case key.Matches(keyMsg, m.keys.PrevPane):
		m.cycleFocus(-1)
		return nil
	case key.Matches(keyMsg, m.keys.NextTab):
		m.switchTab(m.tabs.neighbour(1))
		return nil
	case key.Matches(keyMsg, m.keys.PrevTab):
		m.switchTab(m.tabs.neighbour(-1))
		return nil
	case key.Matches(keyMsg, m.keys.Back):
		m.clearStatus()
		m.controller.NavigateBack()
		return nil
	case key.Matches(keyMsg, m.keys.Forward):
		m.clearStatus()
		m.controller.NavigateForward()
		return nil
	case key.Matches(keyMsg, m.keys.Home):
		m.clearStatus()
		m.controller.NavigateHome()
		return nil
	case key.Matches(keyMsg, m.keys.Info):
		m.controller.OnInfoToggled(!m.controller.InfoVisible())
		return nil
	case key.Matches(keyMsg, m.keys.Refresh):
		m.refresh()
		return nil
	case key.Matches(keyMsg, m.keys.Search):
		m.startSearch()
		return nil
	case key.Matches(keyMsg, m.keys.ClearSearch):
		m.clearSearch()
		return nil
	}
	if keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) == 1 {
		if r := keyMsg.Runes[0]; r >= '1' && r <= '9' {
			if name, ok := m.tabs.at(int(r - '1')); ok {
				m.switchTab(name)
			}
			return nil
		}
	}
	switch m.focus {
	case PaneTree:
		m.handleTreeKey(keyMsg)
	case PanePublishes:
		return m.handlePublishKey(keyMsg)
	case PaneTypes:
		m.handleTypeKey(keyMsg)
	}
	return nil
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) {
	view := m.currentTree()
	if view == nil {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		view.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		view.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		view.page(-1)
	case key.Matches(msg, m.keys.PageDown):
		view.page(1)
	case key.Matches(msg, m.keys.Expand):
		view.expand()
	case key.Matches(msg, m.keys.Collapse):
		view.collapse()
	case key.Matches(msg, m.keys.Activate):
		if !view.toggle() {
			view.selectCursor()
		}
	}
}

func (m *Model) handlePublishKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.publishes.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.publishes.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.publishes.page(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.publishes.page(1)
	case key.Matches(msg, m.keys.Activate):
		m.publishes.activate()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelectedPath()
	}
	return nil
}

func (m *Model) handleTypeKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.types.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.types.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Activate):
		m.types.toggle()
	case key.Matches(msg, m.keys.CheckAll):
		m.types.checkAll()
	case key.Matches(msg, m.keys.CheckNone):
		m.types.checkNone()
	}
}

func (m *Model) cycleFocus(delta int) {
	n := len(paneNames)
	m.focus = Pane(((int(m.focus)+delta)%n + n) % n)
	if m.focus != PanePublishes {
		m.searching = false
	}
	events.UI.Focus(m.focus.String())
}

// switchTab activates a preset tab the way a click on it would.
func (m *Model) switchTab(name string) {
	if name == "" {
		return
	}
	m.clearStatus()
	if err := m.tabs.SetCurrent(name); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
}

// refresh re-fetches the current tree, the publish list and the types.
func (m *Model) refresh() {
	if p := m.controller.CurrentPreset(); p != nil {
		p.Model.RefreshData()
	}
	m.publishStore.RefreshData()
	m.typeStore.LoadData()
	m.clearStatus()
}

func (m *Model) clearStatus() {
	m.errMsg = ""
	m.forceClearInfo()
}
