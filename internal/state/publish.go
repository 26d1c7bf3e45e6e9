package state

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
)

// PublishItem is one row of the publish area: either a folder standing for a
// child of the selected tree item, or a publish file.
type PublishItem struct {
	Folder  bool
	TreeKey string
	Label   string
	Publish *catalog.Publish
}

// ID identifies the row within the publish list.
func (p PublishItem) ID() string {
	if p.Folder {
		return "folder:" + p.TreeKey
	}
	if p.Publish != nil {
		return fmt.Sprintf("publish:%d", p.Publish.ID)
	}
	return ""
}

// TypeID returns the publish type, zero for folders.
func (p PublishItem) TypeID() int64 {
	if p.Folder || p.Publish == nil {
		return 0
	}
	return p.Publish.TypeID
}

// PublishStore holds the folders and publishes for the selected entity.
type PublishStore struct {
	requester Requester

	entity    *catalog.Entity
	folders   []PublishItem
	publishes []catalog.Publish

	seq       int
	loading   bool
	destroyed bool
	err       error
}

// NewPublishStore returns an empty store.
func NewPublishStore(requester Requester) *PublishStore {
	return &PublishStore{requester: requester}
}

// LoadData points the store at a new entity and its folder children. Any
// publishes of the previous entity are dropped until RefreshData completes.
func (s *PublishStore) LoadData(entity *catalog.Entity, folders []*TreeItem) {
	if s.destroyed {
		return
	}
	s.entity = entity
	s.publishes = nil
	s.err = nil
	s.folders = s.folders[:0]
	for _, f := range folders {
		if f == nil {
			continue
		}
		s.folders = append(s.folders, PublishItem{Folder: true, TreeKey: f.Key, Label: f.Label})
	}
	entityLabel := ""
	if entity != nil {
		entityLabel = entity.Ref().String()
	}
	events.Publish.Load(entityLabel, len(s.folders))
}

// RefreshData fetches publishes for the current entity. Without an entity
// only folders are shown and nothing is fetched.
func (s *PublishStore) RefreshData() {
	if s.destroyed {
		return
	}
	s.seq++
	if s.entity == nil || s.requester == nil {
		s.loading = false
		return
	}
	if s.requester.Submit(backend.Request{Kind: backend.KindPublishes, Entity: s.entity.Ref(), Seq: s.seq}) {
		s.loading = true
	}
}

// SetPublishes applies fetched publishes, ignoring results for an older request.
func (s *PublishStore) SetPublishes(seq int, pubs []catalog.Publish, err error) bool {
	if s.destroyed || seq != s.seq {
		events.Backend.Stale(backend.KindPublishes.String(), "", seq)
		return false
	}
	s.loading = false
	s.err = err
	if err != nil {
		return true
	}
	s.publishes = append([]catalog.Publish(nil), pubs...)
	if s.entity != nil {
		events.Publish.Loaded(s.entity.Ref().String(), len(pubs))
	}
	return true
}

// Entity returns the entity publishes are loaded for.
func (s *PublishStore) Entity() *catalog.Entity { return s.entity }

// Publishes returns the loaded publishes.
func (s *PublishStore) Publishes() []catalog.Publish { return s.publishes }

// Loading reports whether a fetch is outstanding.
func (s *PublishStore) Loading() bool { return s.loading }

// Err returns the error from the most recent fetch.
func (s *PublishStore) Err() error { return s.err }

// Items lists folders first, then publishes in catalog order.
func (s *PublishStore) Items() []PublishItem {
	items := make([]PublishItem, 0, len(s.folders)+len(s.publishes))
	items = append(items, s.folders...)
	for i := range s.publishes {
		p := &s.publishes[i]
		items = append(items, PublishItem{
			TreeKey: "",
			Label:   fmt.Sprintf("%s v%03d", p.Code, p.Version),
			Publish: p,
		})
	}
	return items
}

// Destroy releases the loaded data and ignores further results.
func (s *PublishStore) Destroy() {
	s.destroyed = true
	s.entity = nil
	s.folders = nil
	s.publishes = nil
}

// PublishProxy filters a PublishStore by publish type.
type PublishProxy struct {
	source   *PublishStore
	filtered bool
	allowed  map[int64]struct{}
}

// NewPublishProxy wraps source. Until a filter is set every row passes.
func NewPublishProxy(source *PublishStore) *PublishProxy {
	return &PublishProxy{source: source}
}

// SetFilterByTypeIDs shows only publishes whose type is in ids. An empty set
// hides every publish. Folders always pass.
func (p *PublishProxy) SetFilterByTypeIDs(ids []int64) {
	p.filtered = true
	p.allowed = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		p.allowed[id] = struct{}{}
	}
	events.Filter.Types(ids)
}

// Accepts reports whether item passes the type filter.
func (p *PublishProxy) Accepts(item PublishItem) bool {
	if item.Folder || !p.filtered {
		return true
	}
	_, ok := p.allowed[item.TypeID()]
	return ok
}

// Items returns the source rows that pass the filter.
func (p *PublishProxy) Items() []PublishItem {
	if p.source == nil {
		return nil
	}
	all := p.source.Items()
	out := all[:0]
	for _, item := range all {
		if p.Accepts(item) {
			out = append(out, item)
		}
	}
	return out
}

// Source returns the wrapped store.
func (p *PublishProxy) Source() *PublishStore { return p.source }
