package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openSeeded(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "catalog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	wrote, err := cat.Seed(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !wrote {
		t.Fatalf("expected seed to write rows into an empty catalog")
	}
	return cat
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	cat := openSeeded(t)
	wrote, err := cat.Seed(context.Background())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if wrote {
		t.Fatalf("expected second seed to be a no-op")
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := cat.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = cat.Close()

	again, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	shots, err := again.Entities(context.Background(), EntityQuery{Type: "Shot"})
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	if len(shots) != 3 {
		t.Fatalf("expected 3 shots after reopen, got %d", len(shots))
	}
}

func TestEntitiesOrderedByCode(t *testing.T) {
	cat := openSeeded(t)
	assets, err := cat.Entities(context.Background(), EntityQuery{Type: "Asset"})
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	want := []string{"castle", "hero", "sidekick", "sword"}
	if len(assets) != len(want) {
		t.Fatalf("expected %d assets, got %d", len(want), len(assets))
	}
	for i, code := range want {
		if assets[i].Code != code {
			t.Fatalf("asset %d: expected %q, got %q", i, code, assets[i].Code)
		}
	}
}

func TestEntitiesLinkFilter(t *testing.T) {
	cat := openSeeded(t)
	seq := EntityRef{Type: "Sequence", ID: 10}
	shots, err := cat.Entities(context.Background(), EntityQuery{
		Type:    "Shot",
		Filters: [][]interface{}{{"sg_sequence", "is", seq.Link()}},
	})
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	if len(shots) != 2 {
		t.Fatalf("expected 2 shots in SEQ_A, got %d", len(shots))
	}
	ref, ok := AsRef(shots[0].Field("sg_sequence"))
	if !ok || ref.Name != "SEQ_A" {
		t.Fatalf("expected decoded link to SEQ_A, got %+v (ok=%v)", ref, ok)
	}
}

func TestEntitiesUnsupportedFilter(t *testing.T) {
	cat := openSeeded(t)
	_, err := cat.Entities(context.Background(), EntityQuery{
		Type:    "Shot",
		Filters: [][]interface{}{{"code", "greater_than", 3}},
	})
	if !errors.Is(err, ErrUnsupportedFilter) {
		t.Fatalf("expected ErrUnsupportedFilter, got %v", err)
	}
}

func TestPublishesOrderedByVersion(t *testing.T) {
	cat := openSeeded(t)
	pubs, err := cat.Publishes(context.Background(), EntityRef{Type: "Asset", ID: 200, Name: "hero"})
	if err != nil {
		t.Fatalf("publishes: %v", err)
	}
	if len(pubs) != 3 {
		t.Fatalf("expected 3 hero publishes, got %d", len(pubs))
	}
	if pubs[0].Code != "hero_cache" {
		t.Fatalf("expected hero_cache first, got %s", pubs[0].Code)
	}
	if pubs[1].Version != 3 || pubs[2].Version != 2 {
		t.Fatalf("expected hero_model v3 before v2, got v%d then v%d", pubs[1].Version, pubs[2].Version)
	}
	if pubs[1].TypeCode != "Maya Scene" {
		t.Fatalf("expected joined type code, got %q", pubs[1].TypeCode)
	}
	if pubs[0].CreatedAt.IsZero() {
		t.Fatalf("expected created timestamp to round trip")
	}
}

func TestResolve(t *testing.T) {
	cat := openSeeded(t)
	ent, err := cat.Resolve(context.Background(), EntityRef{Type: "Shot", ID: 100})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ent.Code != "SHOT_010" {
		t.Fatalf("expected SHOT_010, got %s", ent.Code)
	}
	if _, err := cat.Resolve(context.Background(), EntityRef{Type: "Shot", ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublishTypes(t *testing.T) {
	cat := openSeeded(t)
	types, err := cat.PublishTypes(context.Background())
	if err != nil {
		t.Fatalf("publish types: %v", err)
	}
	if len(types) != 4 || types[0].Code != "Alembic Cache" {
		t.Fatalf("unexpected publish types: %+v", types)
	}
}
