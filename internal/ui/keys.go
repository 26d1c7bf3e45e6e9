package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	Activate    key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Back        key.Binding
	Forward     key.Binding
	Home        key.Binding
	Info        key.Binding
	Search      key.Binding
	Toggle      key.Binding
	CheckAll    key.Binding
	CheckNone   key.Binding
	Copy        key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
	ClearSearch key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Activate:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		NextPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		NextTab:     key.NewBinding(key.WithKeys(">", "]"), key.WithHelp(">", "next preset")),
		PrevTab:     key.NewBinding(key.WithKeys("<", "["), key.WithHelp("<", "prev preset")),
		Back:        key.NewBinding(key.WithKeys("b", "alt+left"), key.WithHelp("b", "back")),
		Forward:     key.NewBinding(key.WithKeys("f", "alt+right"), key.WithHelp("f", "forward")),
		Home:        key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Info:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle type")),
		CheckAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all types")),
		CheckNone:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no types")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		ClearSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.NextTab, k.Back, k.Forward, k.Home, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Expand, k.Collapse},
		{k.Activate, k.NextPane, k.PrevPane, k.NextTab, k.PrevTab},
		{k.Back, k.Forward, k.Home, k.Info, k.Refresh},
		{k.Search, k.ClearSearch, k.Toggle, k.CheckAll, k.CheckNone, k.Copy},
		{k.Help, k.Quit},
	}
}
