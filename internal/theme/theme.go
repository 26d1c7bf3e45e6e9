package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading               *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	ActiveItem            *lipgloss.Style
	Folder                *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Tab                   *lipgloss.Style
	ActiveTab             *lipgloss.Style
	PaneTitle             *lipgloss.Style
	FocusedPaneTitle      *lipgloss.Style
	NavEnabled            *lipgloss.Style
	NavDisabled           *lipgloss.Style
	Breadcrumbs           *lipgloss.Style
	Separator             *lipgloss.Style
	DetailKey             *lipgloss.Style
	DetailValue           *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	ActiveItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	),
	Folder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 1),
	),
	PaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FocusedPaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Underline(true),
	),
	NavEnabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	NavDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Breadcrumbs: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	DetailKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	DetailValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
