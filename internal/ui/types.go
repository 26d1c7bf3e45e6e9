package ui

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/pipeline-loader/internal/state"
	uistate "github.com/atomicstack/pipeline-loader/internal/ui/state"
)

// typeList is the publish type checklist.
type typeList struct {
	store      *state.TypeStore
	list       *uistate.List
	maxVisible int
}

func newTypeList(store *state.TypeStore) *typeList {
	l := uistate.NewList("types", "Types", nil)
	l.Checkable = true
	return &typeList{store: store, list: l}
}

func (t *typeList) sync() {
	entries := t.store.Entries()
	items := make([]uistate.Item, len(entries))
	checked := make([]string, 0, len(entries))
	for i, e := range entries {
		id := strconv.FormatInt(e.ID, 10)
		items[i] = uistate.Item{ID: id, Label: fmt.Sprintf("%s (%d)", e.Code, e.Count)}
		if e.Checked {
			checked = append(checked, id)
		}
	}
	t.list.UpdateItems(items)
	t.list.SetChecked(checked)
	t.list.EnsureCursorVisible(t.maxVisible)
}

func (t *typeList) toggle() bool {
	if !t.store.Toggle(t.list.Cursor) {
		return false
	}
	t.sync()
	return true
}

func (t *typeList) checkAll() {
	t.store.CheckAll()
	t.sync()
}

func (t *typeList) checkNone() {
	t.store.CheckNone()
	t.sync()
}

func (t *typeList) moveCursor(delta int) bool {
	moved := false
	switch {
	case delta < 0:
		moved = t.list.MoveCursorUp()
	case delta > 0:
		moved = t.list.MoveCursorDown()
	}
	if moved {
		t.list.EnsureCursorVisible(t.maxVisible)
	}
	return moved
}
