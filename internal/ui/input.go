package ui

import (
	"unicode"

	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	uistate "github.com/atomicstack/pipeline-loader/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *uistate.List, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) startSearch() {
	m.focus = PanePublishes
	m.searching = true
	m.filterCursorDirty = true
	events.UI.Focus(m.focus.String())
}

func (m *Model) clearSearch() {
	list := m.publishes.list
	if list.Filter == "" {
		m.searching = false
		return
	}
	before := list.FilterCursorPos()
	list.SetFilter("", 0)
	m.noteFilterCursorChange(list, before)
	m.searching = false
	events.Filter.Cleared(list.ID)
	m.afterFilterChange()
}

// handleSearchKey consumes the keys that edit the publish search. Keys it
// does not handle fall through to the normal bindings.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearSearch()
		return true, nil
	case tea.KeyEnter:
		m.searching = false
		return true, nil
	}
	return m.handleTextInput(msg)
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.publishes.list
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false, nil
		}
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		events.Filter.Cleared(current.ID)
		m.afterFilterChange()
		return true, nil
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.WordBackspace(current.ID, current.Filter)
		m.afterFilterChange()
		return true, nil
	case "ctrl+a":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorStart() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true, nil
	case "ctrl+e":
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorEnd() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune(), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyLeft:
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true, nil
	case tea.KeyRight:
		before := current.FilterCursorPos()
		if !current.MoveFilterCursorRuneForward() {
			return false, nil
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true, nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	current := m.publishes.list
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(current, before)
	events.Filter.Append(current.ID, current.Filter)
	m.afterFilterChange()
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.publishes.list
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(current, before)
	events.Filter.Backspace(current.ID, current.Filter)
	m.afterFilterChange()
	return true
}

// afterFilterChange keeps the details pane pointed at the row under the
// cursor once the search narrowed or widened the list.
func (m *Model) afterFilterChange() {
	m.forceClearInfo()
	m.errMsg = ""
	m.publishes.list.EnsureCursorVisible(m.publishes.maxVisible)
	m.publishes.notifyIfMoved()
}

func (m *Model) filterPrompt() string {
	current := m.publishes.list
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := current.Filter
	if text == "" {
		if !m.searching {
			return prompt + render(styles.FilterPlaceholder, "(press / to search publishes)")
		}
		placeholder := []rune("(type to search)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(text)
	if !m.searching {
		return prompt + render(styles.Filter, text)
	}
	pos := current.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
