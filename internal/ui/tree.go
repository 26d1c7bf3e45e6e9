package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/atomicstack/pipeline-loader/internal/state"
	uistate "github.com/atomicstack/pipeline-loader/internal/ui/state"
)

// treeView renders one preset's entity tree and owns its selection. The
// selection is kept as a stable key so it survives tree rebuilds.
type treeView struct {
	preset      string
	model       *state.EntityTree
	list        *uistate.List
	selectedKey string
	maxVisible  int
	onChange    func()
}

func newTreeView(preset string, model *state.EntityTree) *treeView {
	v := &treeView{
		preset: preset,
		model:  model,
		list:   uistate.NewList("tree:"+preset, preset, nil),
	}
	v.sync()
	return v
}

// SelectedItem resolves the selection against the current tree.
func (v *treeView) SelectedItem() *state.TreeItem {
	return v.model.Item(v.selectedKey)
}

// Select makes item the selection, notifying the handler when it changed.
func (v *treeView) Select(item *state.TreeItem) error {
	if item == nil {
		return v.ClearSelection()
	}
	current := v.model.Item(item.Key)
	if current == nil {
		return fmt.Errorf("item %q is not in %s", item.Key, v.preset)
	}
	v.model.ExpandTo(current)
	v.sync()
	if idx := v.list.IndexOf(current.Key); idx >= 0 {
		v.list.Cursor = idx
		v.list.EnsureCursorVisible(v.maxVisible)
	}
	v.setSelected(current.Key)
	return nil
}

// ClearSelection drops the selection, notifying the handler when there was one.
func (v *treeView) ClearSelection() error {
	v.setSelected("")
	return nil
}

// ScrollTo expands the ancestors of item and centres it in the viewport.
func (v *treeView) ScrollTo(item *state.TreeItem) error {
	current := v.model.Item(item.Key)
	if current == nil {
		return fmt.Errorf("item %q is not in %s", item.Key, v.preset)
	}
	v.model.ExpandTo(current)
	v.sync()
	v.list.CenterOn(v.list.IndexOf(current.Key), v.maxVisible)
	return nil
}

func (v *treeView) SetSelectionChangedHandler(fn func()) {
	v.onChange = fn
}

func (v *treeView) setSelected(key string) {
	if key == v.selectedKey {
		return
	}
	v.selectedKey = key
	events.Tree.Selected(v.preset, key)
	if v.onChange != nil {
		v.onChange()
	}
}

// sync rebuilds the visible rows from the model.
func (v *treeView) sync() {
	visible := v.model.Visible()
	items := make([]uistate.Item, len(visible))
	for i, item := range visible {
		items[i] = uistate.Item{ID: item.Key, Label: treeRowLabel(item)}
	}
	v.list.UpdateItems(items)
}

func treeRowLabel(item *state.TreeItem) string {
	marker := "  "
	if item.HasChildren() {
		marker = "▸ "
		if item.Expanded {
			marker = "▾ "
		}
	}
	return strings.Repeat("  ", item.Depth()) + marker + item.Label
}

func (v *treeView) cursorItem() *state.TreeItem {
	row, ok := v.list.Current()
	if !ok {
		return nil
	}
	return v.model.Item(row.ID)
}

// selectCursor selects the row under the cursor, as a user click would.
func (v *treeView) selectCursor() {
	if item := v.cursorItem(); item != nil {
		v.setSelected(item.Key)
	}
}

func (v *treeView) moveCursor(delta int) bool {
	moved := false
	switch {
	case delta < 0:
		moved = v.list.MoveCursorUp()
	case delta > 0:
		moved = v.list.MoveCursorDown()
	}
	if moved {
		v.list.EnsureCursorVisible(v.maxVisible)
		events.UI.Cursor(v.list.ID, v.list.Cursor)
		v.selectCursor()
	}
	return moved
}

func (v *treeView) page(direction int) bool {
	moved := false
	if direction < 0 {
		moved = v.list.MoveCursorPageUp(v.maxVisible)
	} else {
		moved = v.list.MoveCursorPageDown(v.maxVisible)
	}
	if moved {
		v.list.EnsureCursorVisible(v.maxVisible)
		v.selectCursor()
	}
	return moved
}

// expand opens the row under the cursor, or steps into its first child when
// it is already open.
func (v *treeView) expand() bool {
	item := v.cursorItem()
	if item == nil || !item.HasChildren() {
		return false
	}
	if !item.Expanded {
		item.Expanded = true
		v.sync()
		return true
	}
	return v.moveCursor(1)
}

// collapse closes the row under the cursor, or moves to its parent.
func (v *treeView) collapse() bool {
	item := v.cursorItem()
	if item == nil {
		return false
	}
	if item.HasChildren() && item.Expanded {
		item.Expanded = false
		v.sync()
		return true
	}
	parent := item.Parent()
	if parent == nil {
		return false
	}
	if idx := v.list.IndexOf(parent.Key); idx >= 0 {
		v.list.Cursor = idx
		v.list.EnsureCursorVisible(v.maxVisible)
		v.selectCursor()
		return true
	}
	return false
}

func (v *treeView) toggle() bool {
	item := v.cursorItem()
	if item == nil || !item.HasChildren() {
		return false
	}
	item.Expanded = !item.Expanded
	v.sync()
	return true
}
