package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/loader"
)

func TestTreeSelectionRecordsHistoryAndBreadcrumbs(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	c := m.Controller()

	f.press(t, "j")
	if got := c.Breadcrumbs(); got != "Environment" {
		t.Fatalf("expected Environment breadcrumbs, got %q", got)
	}
	if c.History().Len() != 1 || c.CanGoBack() {
		t.Fatalf("expected one entry and back disabled, got len %d", c.History().Len())
	}
	if ids := publishIDs(m); len(ids) != 1 || !strings.HasPrefix(ids[0], "folder:") {
		t.Fatalf("expected the castle folder row, got %v", ids)
	}

	f.press(t, "l", "j")
	if got := c.Breadcrumbs(); got != "Environment"+loader.BreadcrumbSeparator+"castle" {
		t.Fatalf("expected castle breadcrumbs, got %q", got)
	}
	if c.History().Len() != 2 || !c.CanGoBack() || c.CanGoForward() {
		t.Fatalf("unexpected button state after two selections")
	}

	f.press(t, "b")
	if got := c.Breadcrumbs(); got != "Environment" {
		t.Fatalf("expected back to Environment, got %q", got)
	}
	if c.History().Len() != 2 || c.CanGoBack() || !c.CanGoForward() {
		t.Fatalf("expected back to keep entries and enable forward")
	}
	if got := m.currentTree().SelectedItem(); got == nil || got.Label != "Environment" {
		t.Fatalf("expected the tree to follow history, got %+v", got)
	}

	f.press(t, "f")
	if got := m.currentTree().SelectedItem(); got == nil || got.Label != "castle" {
		t.Fatalf("expected forward to reselect castle, got %+v", got)
	}
	if c.CanGoForward() {
		t.Fatalf("expected forward disabled at the newest entry")
	}
}

func TestNewSelectionAfterBackDropsForwardEntries(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	c := f.model().Controller()
	f.press(t, "j", "j", "b")
	if !c.CanGoForward() {
		t.Fatalf("expected forward after back")
	}
	f.press(t, "k")
	if c.CanGoForward() {
		t.Fatalf("expected forward entries dropped by a new selection")
	}
	entries := c.History().Entries()
	if len(entries) != 2 || entries[1].ItemKey != "sg_asset_type=Character" {
		t.Fatalf("unexpected history %+v", entries)
	}
}

func TestTabSwitchRefreshesAndRecords(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	c := m.Controller()

	f.h.Send(keyMsg("]"))
	if c.Current() != "Shots" || m.tabs.current != "Shots" {
		t.Fatalf("expected Shots, got %s", c.Current())
	}
	if f.backend.count(backend.KindEntities) != 1 {
		t.Fatalf("expected a refresh of the Shots tree, got %+v", f.backend.pending)
	}
	f.serve(t)
	if c.History().Len() != 1 {
		t.Fatalf("expected the tab switch recorded")
	}

	f.press(t, "1")
	if c.Current() != "Assets" || c.History().Len() != 2 {
		t.Fatalf("expected Assets recorded, got %s with %d entries", c.Current(), c.History().Len())
	}

	f.h.Send(keyMsg("b"))
	if c.Current() != "Shots" || m.tabs.current != "Shots" {
		t.Fatalf("expected back to Shots, got %s", c.Current())
	}
	if n := f.backend.count(backend.KindEntities); n != 0 {
		t.Fatalf("expected history replay not to refresh, got %d requests", n)
	}
	if c.History().Len() != 2 {
		t.Fatalf("expected replay not to record")
	}
}

func TestTabKeysWrapAndIgnoreUnknownDigits(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	c := f.model().Controller()
	f.press(t, "[")
	if c.Current() != "Tasks" {
		t.Fatalf("expected wrap to Tasks, got %s", c.Current())
	}
	f.press(t, "9")
	if c.Current() != "Tasks" {
		t.Fatalf("expected digit without tab to be ignored, got %s", c.Current())
	}
	f.press(t, "3")
	if c.History().Len() != 1 {
		t.Fatalf("expected reselecting the current tab not to record")
	}
}

func TestHomeSelectsContextEntityOnceLoaded(t *testing.T) {
	ref := catalog.EntityRef{Type: "Shot", ID: 100}
	f := newFixture(t, catalog.Context{Entity: &ref})
	m := f.model()
	c := m.Controller()
	if c.Current() != "Shots" {
		t.Fatalf("expected home to switch to Shots, got %s", c.Current())
	}
	item := m.currentTree().SelectedItem()
	if item == nil || item.Label != "SHOT_010" {
		t.Fatalf("expected SHOT_010 selected, got %+v", item)
	}
	if got := c.Breadcrumbs(); got != "SEQ_A"+loader.BreadcrumbSeparator+"SHOT_010" {
		t.Fatalf("unexpected breadcrumbs %q", got)
	}
	if c.History().Len() != 2 {
		t.Fatalf("expected tab entry and home entry, got %+v", c.History().Entries())
	}
	if ids := publishIDs(m); !containsID(ids, "publish:1003") {
		t.Fatalf("expected shot publishes, got %v", ids)
	}

	f.press(t, "1", "H")
	if c.Current() != "Shots" || m.currentTree().SelectedItem() == nil {
		t.Fatalf("expected home key to return to the shot")
	}
}

func TestTreeExpandCollapseAndEnter(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	tree := m.currentTree()

	f.press(t, "enter")
	if len(tree.list.Items) != 5 {
		t.Fatalf("expected Character expanded to five rows, got %d", len(tree.list.Items))
	}
	f.press(t, "l")
	if row, _ := tree.list.Current(); row.ID != "sg_asset_type=Character/Asset:200" {
		t.Fatalf("expected expand on an open row to step into it, got %s", row.ID)
	}
	f.press(t, "h")
	if row, _ := tree.list.Current(); row.ID != "sg_asset_type=Character" {
		t.Fatalf("expected collapse on a leaf to move to its parent, got %s", row.ID)
	}
	f.press(t, "h")
	if len(tree.list.Items) != 3 {
		t.Fatalf("expected Character collapsed, got %d rows", len(tree.list.Items))
	}
}

func TestPaneFocusCycles(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	for _, want := range []Pane{PanePublishes, PaneTypes, PaneTree} {
		f.press(t, "tab")
		if m.focus != want {
			t.Fatalf("expected focus %s, got %s", want, m.focus)
		}
	}
	f.press(t, "shift+tab")
	if m.focus != PaneTypes {
		t.Fatalf("expected reverse cycle to types, got %s", m.focus)
	}
}

func TestPublishFolderActivationSelectsTreeItem(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	f.press(t, "j", "tab", "enter")
	item := m.currentTree().SelectedItem()
	if item == nil || item.Label != "castle" {
		t.Fatalf("expected folder activation to select castle, got %+v", item)
	}
	if m.Controller().History().Len() != 2 {
		t.Fatalf("expected the folder jump recorded")
	}
}

func TestRefreshRequestsEveryStore(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	f.h.Send(keyMsg("r"))
	if f.backend.count(backend.KindEntities) != 1 || f.backend.count(backend.KindPublishTypes) != 1 {
		t.Fatalf("expected tree and type refresh, got %+v", f.backend.pending)
	}
	f.serve(t)
}

func TestRefreshThatRemovesSelectionEmptiesPublishes(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	c := m.Controller()
	f.press(t, "j", "l", "j")
	if got := m.currentTree().SelectedItem(); got == nil || got.Label != "castle" {
		t.Fatalf("expected castle selected, got %+v", got)
	}
	if m.publishStore.Entity() == nil {
		t.Fatalf("expected publishes loaded for castle")
	}

	f.h.Send(keyMsg("r"))
	pending := f.backend.pending
	f.backend.pending = nil
	for _, req := range pending {
		if req.Kind == backend.KindEntities {
			f.h.Send(backendEventMsg{event: backend.Event{Request: req, Data: []catalog.Entity{}}})
		} else {
			f.backend.pending = append(f.backend.pending, req)
		}
	}
	f.serve(t)

	if got := m.currentTree().SelectedItem(); got != nil {
		t.Fatalf("expected no selection after the item vanished, got %+v", got)
	}
	if got := c.Breadcrumbs(); got != "" {
		t.Fatalf("expected empty breadcrumbs, got %q", got)
	}
	if m.publishStore.Entity() != nil {
		t.Fatalf("expected publish store cleared, still on %+v", m.publishStore.Entity())
	}
	if ids := publishIDs(m); len(ids) != 0 {
		t.Fatalf("expected empty publish area, got %v", ids)
	}
	entries := c.History().Entries()
	if last := entries[len(entries)-1]; last != (loader.Entry{Preset: "Assets"}) {
		t.Fatalf("expected a cleared selection recorded, got %+v", last)
	}
}
