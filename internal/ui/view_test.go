package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/state"
	"github.com/atomicstack/pipeline-loader/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func TestViewShowsTabsTreeAndNavigation(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	view := f.h.View()
	for _, want := range []string{"1 Assets", "2 Shots", "3 Tasks", "◀ back", "⌂ home", "forward ▶", "Character", "Publishes", "Types", "Maya Scene (0)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Details") {
		t.Fatalf("expected details hidden by default")
	}
}

func TestViewShowsBreadcrumbsAndCounts(t *testing.T) {
	f := shotFixture(t)
	view := f.h.View()
	for _, want := range []string{"SEQ_A > SHOT_010", "Publishes: SHOT_010", "shot010_comp v001", "Maya Scene (2)", "Nuke Script (1)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewRespectsHeight(t *testing.T) {
	f := shotFixture(t)
	f.h.Send(tea.WindowSizeMsg{Width: 80, Height: 12})
	m := f.model()
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected fixed size to win over resize, got %dx%d", m.width, m.height)
	}
	m.fixedWidth, m.fixedHeight = false, false
	f.h.Send(tea.WindowSizeMsg{Width: 80, Height: 12})
	lines := strings.Split(f.h.View(), "\n")
	if len(lines) > 12 {
		t.Fatalf("expected at most 12 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if m.publishes.maxVisible < 1 || m.currentTree().maxVisible != 6 {
		t.Fatalf("unexpected row budgets: tree %d publishes %d", m.currentTree().maxVisible, m.publishes.maxVisible)
	}
}

func TestHelpToggle(t *testing.T) {
	f := newFixture(t, catalog.Context{})
	m := f.model()
	m.showFooter = true
	short := f.h.View()
	if !strings.Contains(short, "quit") {
		t.Fatalf("expected short help in footer:\n%s", short)
	}
	f.press(t, "?")
	if !m.help.ShowAll || !strings.Contains(f.h.View(), "copy path") {
		t.Fatalf("expected full help after ?")
	}
}

func TestDetailLinesGolden(t *testing.T) {
	item := state.PublishItem{
		Label: "hero_model v003",
		Publish: &catalog.Publish{
			ID:          7,
			Code:        "hero_model",
			Version:     3,
			TypeCode:    "Maya Scene",
			Entity:      catalog.EntityRef{Type: "Asset", ID: 200, Name: "hero"},
			Path:        "/proj/hero.v003.ma",
			CreatedBy:   "artist",
			CreatedAt:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			Description: "fixed normals",
		},
	}
	testutil.AssertGolden(t, "details_publish.txt", strings.Join(detailLines(item), "\n")+"\n")
}

func TestDetailLinesForFolder(t *testing.T) {
	lines := detailLines(state.PublishItem{Folder: true, TreeKey: "sg_asset_type=Prop", Label: "Prop"})
	if len(lines) != 2 || !strings.Contains(lines[0], "Folder  Prop") {
		t.Fatalf("unexpected folder details %q", lines)
	}
}

func TestInfoToggleShowsDetails(t *testing.T) {
	f := shotFixture(t)
	m := f.model()
	f.press(t, "i")
	if !m.Controller().InfoVisible() {
		t.Fatalf("expected details visible")
	}
	view := f.h.View()
	if !strings.Contains(view, "Details") || !strings.Contains(view, "/proj/demo/seq_a/shot010/anim/shot010_anim.v002.ma") {
		t.Fatalf("expected details of the first publish:\n%s", view)
	}
	f.press(t, "tab", "j")
	if m.details.item == nil || m.details.item.ID() != "publish:1000" {
		t.Fatalf("expected details to follow the cursor, got %+v", m.details.item)
	}
	f.press(t, "i")
	if strings.Contains(f.h.View(), "Details") {
		t.Fatalf("expected details hidden again")
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("abcdef", 4); got != "abc…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateText("abc", 4); got != "abc" {
		t.Fatalf("expected short text untouched, got %q", got)
	}
	if got := truncateText("abc", 1); got != "a" {
		t.Fatalf("unexpected single column truncation %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	got := limitHeight(lines, 2, 10)
	if len(got) != 2 || got[1].text != "…" {
		t.Fatalf("unexpected limit result %+v", got)
	}
}
