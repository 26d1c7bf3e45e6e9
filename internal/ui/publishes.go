package ui

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/state"
	uistate "github.com/atomicstack/pipeline-loader/internal/ui/state"
)

// publishView lists the folders and publishes that pass the type filter,
// narrowed further by the search query.
type publishView struct {
	proxy      *state.PublishProxy
	list       *uistate.List
	rows       map[string]state.PublishItem
	lastID     string
	maxVisible int
	onChange   func()
	onActivate func(item state.PublishItem)
}

func newPublishView(proxy *state.PublishProxy) *publishView {
	return &publishView{
		proxy: proxy,
		list:  uistate.NewList("publishes", "Publishes", nil),
		rows:  map[string]state.PublishItem{},
	}
}

// SelectedPublish returns the row under the cursor.
func (v *publishView) SelectedPublish() *state.PublishItem {
	row, ok := v.list.Current()
	if !ok {
		return nil
	}
	item, ok := v.rows[row.ID]
	if !ok {
		return nil
	}
	return &item
}

func (v *publishView) SetSelectionChangedHandler(fn func()) {
	v.onChange = fn
}

func (v *publishView) SetActivatedHandler(fn func(item state.PublishItem)) {
	v.onActivate = fn
}

// sync pulls the filtered rows from the proxy and reports a selection change
// when the row under the cursor is a different one.
func (v *publishView) sync() {
	items := v.proxy.Items()
	rows := make([]uistate.Item, 0, len(items))
	v.rows = make(map[string]state.PublishItem, len(items))
	for _, item := range items {
		id := item.ID()
		v.rows[id] = item
		rows = append(rows, uistate.Item{ID: id, Label: publishRowLabel(item)})
	}
	v.list.UpdateItems(rows)
	v.list.EnsureCursorVisible(v.maxVisible)
	v.notifyIfMoved()
}

func (v *publishView) notifyIfMoved() {
	id := ""
	if row, ok := v.list.Current(); ok {
		id = row.ID
	}
	if id == v.lastID {
		return
	}
	v.lastID = id
	if v.onChange != nil {
		v.onChange()
	}
}

func publishRowLabel(item state.PublishItem) string {
	if item.Folder {
		return "▸ " + item.Label + "/"
	}
	if item.Publish != nil && item.Publish.TypeCode != "" {
		return fmt.Sprintf("  %s  [%s]", item.Label, item.Publish.TypeCode)
	}
	return "  " + item.Label
}

func (v *publishView) moveCursor(delta int) bool {
	moved := false
	switch {
	case delta < 0:
		moved = v.list.MoveCursorUp()
	case delta > 0:
		moved = v.list.MoveCursorDown()
	}
	if moved {
		v.list.EnsureCursorVisible(v.maxVisible)
		v.notifyIfMoved()
	}
	return moved
}

func (v *publishView) page(direction int) bool {
	moved := false
	if direction < 0 {
		moved = v.list.MoveCursorPageUp(v.maxVisible)
	} else {
		moved = v.list.MoveCursorPageDown(v.maxVisible)
	}
	if moved {
		v.list.EnsureCursorVisible(v.maxVisible)
		v.notifyIfMoved()
	}
	return moved
}

func (v *publishView) activate() bool {
	item := v.SelectedPublish()
	if item == nil || v.onActivate == nil {
		return false
	}
	v.onActivate(*item)
	return true
}
