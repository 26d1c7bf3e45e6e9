package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
)

func shotFixture(t *testing.T) *fixture {
	t.Helper()
	ref := catalog.EntityRef{Type: "Shot", ID: 100}
	return newFixture(t, catalog.Context{Entity: &ref})
}

func TestSearchNarrowsPublishes(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	total := len(m.publishes.list.Items)

	f.press(t, "/")
	if !m.searching || m.focus != PanePublishes {
		t.Fatalf("expected search mode on the publish pane")
	}
	f.press(t, "c", "o", "m", "p")
	if m.publishes.list.Filter != "comp" {
		t.Fatalf("expected filter comp, got %q", m.publishes.list.Filter)
	}
	ids := publishIDs(m)
	if len(ids) != 1 || ids[0] != "publish:1003" {
		t.Fatalf("expected only the comp publish, got %v", ids)
	}

	f.press(t, "backspace")
	if m.publishes.list.Filter != "com" {
		t.Fatalf("expected backspace to drop a rune, got %q", m.publishes.list.Filter)
	}

	f.press(t, "esc")
	if m.searching || m.publishes.list.Filter != "" {
		t.Fatalf("expected esc to clear and leave search")
	}
	if got := len(m.publishes.list.Items); got != total {
		t.Fatalf("expected all %d rows back, got %d", total, got)
	}
}

func TestSearchSwallowsBoundKeys(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	f.press(t, "/", "q", "b")
	if m.quitting {
		t.Fatalf("expected q to be typed, not quit")
	}
	if m.publishes.list.Filter != "qb" {
		t.Fatalf("expected filter qb, got %q", m.publishes.list.Filter)
	}
	if !strings.Contains(f.h.View(), `No matches for "qb"`) {
		t.Fatalf("expected empty search message in view")
	}

	f.press(t, "enter")
	if m.searching {
		t.Fatalf("expected enter to leave search")
	}
	if m.publishes.list.Filter != "qb" {
		t.Fatalf("expected enter to keep the filter")
	}
	f.press(t, "esc")
	if m.publishes.list.Filter != "" {
		t.Fatalf("expected esc outside search to clear the filter")
	}
}

func TestSearchLineEditing(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	f.press(t, "/", "a", "n", "m", "left", "left", "i")
	if m.publishes.list.Filter != "ainm" {
		t.Fatalf("expected insertion at the caret, got %q", m.publishes.list.Filter)
	}
	f.press(t, "ctrl+u")
	if m.publishes.list.Filter != "" {
		t.Fatalf("expected ctrl+u to clear, got %q", m.publishes.list.Filter)
	}
	if !m.searching {
		t.Fatalf("expected ctrl+u to stay in search")
	}
}

func TestLeavingPublishPaneEndsSearch(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	f.press(t, "/", "tab")
	if m.searching {
		t.Fatalf("expected search to end when focus leaves publishes")
	}
	if m.focus != PaneTypes {
		t.Fatalf("expected types focus, got %s", m.focus)
	}
}

func TestSearchFollowsDetails(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	f.press(t, "i", "/", "r", "e", "n", "d")
	if m.details.item == nil || m.details.item.ID() != "publish:1004" {
		t.Fatalf("expected details to follow the narrowed cursor, got %+v", m.details.item)
	}
}
