package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

type stubRequester struct {
	last backend.Request
}

func (s *stubRequester) Submit(req backend.Request) bool {
	s.last = req
	return true
}

func TestHandleRoutesEntitiesByPreset(t *testing.T) {
	req := &stubRequester{}
	tree := state.NewEntityTree("Shots", catalog.EntityQuery{Type: "Shot"}, req)
	d := New(nil, nil)
	d.AddTree("Shots", tree)
	tree.LoadData()

	res := d.Handle(backend.Event{
		Request: req.last,
		Data:    []catalog.Entity{{Type: "Shot", ID: 1, Code: "SHOT_010"}},
	})
	if res.TreeUpdated != "Shots" {
		t.Fatalf("expected Shots tree update, got %+v", res)
	}
	if tree.ItemFromEntity("Shot", 1) == nil {
		t.Fatalf("expected entity applied to the tree")
	}

	unknown := d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindEntities, Preset: "Other"}})
	if !unknown.Stale {
		t.Fatalf("expected unknown preset to be reported stale")
	}
}

func TestHandlePublishesUpdatesCounts(t *testing.T) {
	req := &stubRequester{}
	pubs := state.NewPublishStore(req)
	types := state.NewTypeStore(req)
	d := New(pubs, types)

	types.LoadData()
	d.Handle(backend.Event{Request: req.last, Data: []catalog.PublishType{{ID: 1, Code: "Maya Scene"}}})

	pubs.LoadData(&catalog.Entity{Type: "Shot", ID: 1}, nil)
	pubs.RefreshData()
	res := d.Handle(backend.Event{Request: req.last, Data: []catalog.Publish{{ID: 1, TypeID: 1}, {ID: 2, TypeID: 1}}})
	if !res.PublishesUpdated {
		t.Fatalf("expected publish update, got %+v", res)
	}
	if got := types.Entries()[0].Count; got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
}

func TestHandleStalePublishes(t *testing.T) {
	req := &stubRequester{}
	pubs := state.NewPublishStore(req)
	d := New(pubs, nil)
	pubs.LoadData(&catalog.Entity{Type: "Shot", ID: 1}, nil)
	pubs.RefreshData()
	stale := req.last
	pubs.RefreshData()
	if res := d.Handle(backend.Event{Request: stale}); !res.Stale {
		t.Fatalf("expected stale result, got %+v", res)
	}
}

func TestHandleErrorIsApplied(t *testing.T) {
	req := &stubRequester{}
	types := state.NewTypeStore(req)
	d := New(nil, types)
	types.LoadData()
	res := d.Handle(backend.Event{Request: req.last, Err: errors.New("boom")})
	if !res.TypesUpdated || types.Err() == nil {
		t.Fatalf("expected error recorded on the store, got %+v", res)
	}
}
