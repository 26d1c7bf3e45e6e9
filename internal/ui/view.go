package ui

import (
	"fmt"
	"strings"
	"time"

	uistate "github.com/atomicstack/pipeline-loader/internal/ui/state"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultTreeWidth = 32
	treeWidthPercent = 40
	minTreeWidth     = 20
	maxTypeRows      = 8
	columnSeparator  = " │ "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// layout holds the row budget of each pane for the current window size.
type layout struct {
	treeWidth    int
	rightWidth   int
	panelHeight  int
	treeRows     int
	publishRows  int
	typeRows     int
	detailRows   int
	showDetails  bool
	unboundedRow bool
}

func (m *Model) computeLayout() layout {
	lay := layout{treeWidth: defaultTreeWidth, showDetails: m.controller.InfoVisible()}
	if m.width > 0 {
		lay.treeWidth = m.width * treeWidthPercent / 100
		if lay.treeWidth < minTreeWidth {
			lay.treeWidth = minTreeWidth
		}
		lay.rightWidth = m.width - lay.treeWidth - len([]rune(columnSeparator))
		if lay.rightWidth < 1 {
			lay.rightWidth = 1
		}
	}
	lay.typeRows = m.typeStore.Len()
	if lay.typeRows > maxTypeRows {
		lay.typeRows = maxTypeRows
	}
	if lay.typeRows == 0 {
		lay.typeRows = 1
	}
	if lay.showDetails {
		lay.detailRows = len(m.details.lines)
		if lay.detailRows == 0 {
			lay.detailRows = 1
		}
	}
	if m.height <= 0 {
		lay.unboundedRow = true
		lay.treeRows = -1
		lay.publishRows = -1
		return lay
	}
	used := 3 // tabs, navigation, blank
	used += 2 // status, prompt
	if m.showFooter {
		used += 2 + strings.Count(m.help.View(m.keys), "\n")
	}
	lay.panelHeight = m.height - used
	if lay.panelHeight < 3 {
		lay.panelHeight = 3
	}
	lay.treeRows = lay.panelHeight - 1
	fixed := 1 + 2 + lay.typeRows // titles plus separating blank
	if lay.showDetails {
		if maxDetail := lay.panelHeight / 3; lay.detailRows > maxDetail && maxDetail > 0 {
			lay.detailRows = maxDetail
		}
		fixed += 2 + lay.detailRows
	}
	lay.publishRows = lay.panelHeight - fixed
	if lay.publishRows < 1 {
		lay.publishRows = 1
	}
	return lay
}

// applyLayout pushes the row budgets into the widgets so cursor movement
// scrolls by the rows actually shown.
func (m *Model) applyLayout() layout {
	lay := m.computeLayout()
	for _, view := range m.trees {
		view.maxVisible = lay.treeRows
	}
	m.publishes.maxVisible = lay.publishRows
	m.types.maxVisible = lay.typeRows
	return lay
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lay := m.applyLayout()

	header := []styledLine{
		{text: m.tabLine(), raw: true},
		{text: m.navLine(), raw: true},
		{},
	}
	header = applyWidth(header, m.width)

	left := m.treeColumn(lay)
	right := m.rightColumn(lay)
	if !lay.unboundedRow {
		left = padLines(limitHeight(left, lay.panelHeight, lay.treeWidth), lay.panelHeight)
		right = limitHeight(right, lay.panelHeight, lay.rightWidth)
	}
	left = applyWidth(left, lay.treeWidth)
	right = applyWidth(right, lay.rightWidth)
	leftStr := padColumn(renderLines(left), lay.treeWidth)
	sep := columnSeparator
	if styles.Separator != nil {
		sep = styles.Separator.Render(sep)
	}
	sepRows := make([]string, len(left))
	for i := range sepRows {
		sepRows[i] = sep
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, strings.Join(sepRows, "\n"), renderLines(right))

	bottom := []styledLine{m.statusLine(), {text: m.filterPrompt(), raw: true}}
	if m.showFooter {
		bottom = append(bottom, styledLine{})
		for _, line := range strings.Split(m.help.View(m.keys), "\n") {
			bottom = append(bottom, styledLine{text: line, raw: true})
		}
	}
	bottom = applyWidth(bottom, m.width)

	return renderLines(header) + "\n" + body + "\n" + renderLines(bottom)
}

func (m *Model) tabLine() string {
	parts := make([]string, 0, len(m.tabs.names)+1)
	for i, name := range m.tabs.names {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		style := styles.Tab
		if name == m.tabs.current {
			style = styles.ActiveTab
		}
		if style != nil {
			label = style.Render(label)
		}
		parts = append(parts, label)
	}
	line := strings.Join(parts, " ")
	if m.loading() {
		line += "  " + m.spinner.View()
	}
	return line
}

func (m *Model) navLine() string {
	nav := func(label string, enabled bool) string {
		style := styles.NavDisabled
		if enabled {
			style = styles.NavEnabled
		}
		if style == nil {
			return label
		}
		return style.Render(label)
	}
	crumbs := m.controller.Breadcrumbs()
	if styles.Breadcrumbs != nil && crumbs != "" {
		crumbs = styles.Breadcrumbs.Render(crumbs)
	}
	return strings.Join([]string{
		nav("◀ back", m.controller.CanGoBack()),
		nav("⌂ home", true),
		nav("forward ▶", m.controller.CanGoForward()),
	}, "  ") + "   " + crumbs
}

func (m *Model) paneTitle(title string, pane Pane) styledLine {
	style := styles.PaneTitle
	if pane == m.focus {
		style = styles.FocusedPaneTitle
	}
	return styledLine{text: title, style: style}
}

func (m *Model) treeColumn(lay layout) []styledLine {
	lines := []styledLine{}
	view := m.currentTree()
	if view == nil {
		return lines
	}
	title := view.preset
	if view.model.Loading() {
		title += " (loading…)"
	}
	lines = append(lines, m.paneTitle(title, PaneTree))
	if err := view.model.Err(); err != nil {
		return append(lines, styledLine{text: "Error: " + err.Error(), style: styles.Error})
	}
	active := view.selectedKey
	return append(lines, m.listLines(view.list, lay.treeRows, lay.treeWidth, m.focus == PaneTree, func(item uistate.Item) *lipgloss.Style {
		if item.ID == active {
			return styles.ActiveItem
		}
		return nil
	})...)
}

func (m *Model) rightColumn(lay layout) []styledLine {
	lines := []styledLine{}
	title := "Publishes"
	if ent := m.publishStore.Entity(); ent != nil {
		title += ": " + ent.Code
	}
	if m.publishStore.Loading() {
		title += " (loading…)"
	}
	lines = append(lines, m.paneTitle(title, PanePublishes))
	if err := m.publishStore.Err(); err != nil {
		lines = append(lines, styledLine{text: "Error: " + err.Error(), style: styles.Error})
	} else {
		rows := m.publishes.rows
		lines = append(lines, m.listLines(m.publishes.list, lay.publishRows, lay.rightWidth, m.focus == PanePublishes, func(item uistate.Item) *lipgloss.Style {
			if rows[item.ID].Folder {
				return styles.Folder
			}
			return nil
		})...)
	}
	if !lay.unboundedRow {
		lines = padLines(lines, 1+lay.publishRows)
	}

	lines = append(lines, styledLine{}, m.paneTitle("Types", PaneTypes))
	if err := m.typeStore.Err(); err != nil {
		lines = append(lines, styledLine{text: "Error: " + err.Error(), style: styles.Error})
	} else {
		lines = append(lines, m.listLines(m.types.list, lay.typeRows, lay.rightWidth, m.focus == PaneTypes, nil)...)
	}

	if lay.showDetails {
		lines = append(lines, styledLine{}, styledLine{text: "Details", style: styles.PaneTitle})
		if len(m.details.lines) == 0 {
			lines = append(lines, styledLine{text: "(nothing selected)", style: styles.Info})
		}
		for _, line := range m.details.lines {
			lines = append(lines, styledLine{text: line, style: styles.DetailValue})
		}
	}
	return lines
}

// listLines renders the visible window of list. decorate may return a style
// that overrides the default for rows not under the cursor.
func (m *Model) listLines(list *uistate.List, maxVisible, width int, focused bool, decorate func(uistate.Item) *lipgloss.Style) []styledLine {
	if len(list.Items) == 0 {
		msg := "(no entries)"
		if list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", list.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	start := 0
	items := list.Items
	if maxVisible > 0 && len(items) > maxVisible {
		list.EnsureCursorVisible(maxVisible)
		start = list.ViewportOffset
		end := start + maxVisible
		if end > len(items) {
			end = len(items)
		}
		items = items[start:end]
	}
	lines := make([]styledLine, 0, len(items))
	for i, item := range items {
		var override *lipgloss.Style
		if decorate != nil {
			override = decorate(item)
		}
		lines = append(lines, buildItemLine(item, start+i, list, width, focused, override))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a list row.
// width is the target column width; when > 0 the text is padded so that
// the cursor row's background spans the full column.
func buildItemLine(item uistate.Item, idx int, list *uistate.List, width int, focused bool, override *lipgloss.Style) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	if override != nil {
		lineStyle = override
	}
	indicatorStyle := styles.ItemIndicator
	checkDisplay := ""
	if list.Checkable {
		mark := " "
		if list.IsChecked(item.ID) {
			mark = "x"
		}
		checkDisplay = fmt.Sprintf("[%s] ", mark)
	}
	if idx == list.Cursor && focused {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + checkDisplay + item.Label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return styledLine{text: "Backend: " + msg, style: styles.Error}
	}
	if m.verbose {
		return styledLine{text: fmt.Sprintf("mode %s  history %d/%d", m.controller.Mode(), m.controller.History().Index(), m.controller.History().Len()), style: styles.Footer}
	}
	return styledLine{}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.applyLayout()
	if view := m.currentTree(); view != nil {
		view.list.EnsureCursorVisible(view.maxVisible)
	}
	m.publishes.list.EnsureCursorVisible(m.publishes.maxVisible)
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.loading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// ensureSpinner starts the spinner when a fetch is outstanding and results
// arrive through the event channel.
func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinning || m.waitForBackend() == nil || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func padLines(lines []styledLine, height int) []styledLine {
	for len(lines) < height {
		lines = append(lines, styledLine{})
	}
	return lines
}

// padColumn pads or truncates every rendered row to exactly width visible
// columns so JoinHorizontal keeps the right column aligned.
func padColumn(rendered string, width int) string {
	rows := strings.Split(rendered, "\n")
	for i, row := range rows {
		w := lipgloss.Width(row)
		if w > width {
			rows[i] = truncate.StringWithTail(row, uint(width-1), "…")
		} else if w < width {
			rows[i] = row + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(rows, "\n")
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
