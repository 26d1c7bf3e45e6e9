package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
)

// Requester accepts asynchronous fetch requests. *backend.Worker satisfies it.
type Requester interface {
	Submit(req backend.Request) bool
}

// TreeItem is one row of an entity tree. Grouping rows carry the linked
// entity when the grouping field is a link, otherwise Entity is nil.
type TreeItem struct {
	Key      string
	Label    string
	Entity   *catalog.Entity
	Expanded bool

	parent   *TreeItem
	children []*TreeItem
}

// NewTreeItem builds a detached item.
func NewTreeItem(key, label string, entity *catalog.Entity) *TreeItem {
	return &TreeItem{Key: key, Label: label, Entity: entity}
}

// AddChild appends child and sets its parent.
func (t *TreeItem) AddChild(child *TreeItem) *TreeItem {
	child.parent = t
	t.children = append(t.children, child)
	return child
}

// Parent returns the owning item, nil for roots.
func (t *TreeItem) Parent() *TreeItem {
	if t == nil {
		return nil
	}
	return t.parent
}

// Children returns the direct children.
func (t *TreeItem) Children() []*TreeItem {
	if t == nil {
		return nil
	}
	return t.children
}

// HasChildren reports whether the item can be expanded.
func (t *TreeItem) HasChildren() bool {
	return t != nil && len(t.children) > 0
}

// Depth is zero for roots.
func (t *TreeItem) Depth() int {
	depth := 0
	for p := t.Parent(); p != nil; p = p.parent {
		depth++
	}
	return depth
}

type entityKey struct {
	Type string
	ID   int64
}

// EntityTree is the tree model behind one preset tab.
type EntityTree struct {
	preset    string
	query     catalog.EntityQuery
	requester Requester

	seq       int
	loading   bool
	loaded    bool
	destroyed bool
	err       error

	roots    []*TreeItem
	byKey    map[string]*TreeItem
	byEntity map[entityKey]*TreeItem
	expanded map[string]bool

	onRefreshed func()
}

// NewEntityTree creates an empty tree for preset. Data arrives after LoadData.
func NewEntityTree(preset string, query catalog.EntityQuery, requester Requester) *EntityTree {
	return &EntityTree{
		preset:    preset,
		query:     query,
		requester: requester,
		byKey:     map[string]*TreeItem{},
		byEntity:  map[entityKey]*TreeItem{},
		expanded:  map[string]bool{},
	}
}

// Preset returns the tab the tree belongs to.
func (t *EntityTree) Preset() string { return t.preset }

// Query returns the entity query backing the tree.
func (t *EntityTree) Query() catalog.EntityQuery { return t.query }

// LoadData issues the initial fetch.
func (t *EntityTree) LoadData() {
	t.submit()
}

// RefreshData re-fetches the tree. Earlier in-flight results become stale.
func (t *EntityTree) RefreshData() {
	t.submit()
}

func (t *EntityTree) submit() {
	if t.destroyed || t.requester == nil {
		return
	}
	t.seq++
	if t.requester.Submit(backend.Request{Kind: backend.KindEntities, Preset: t.preset, Query: t.query, Seq: t.seq}) {
		t.loading = true
	}
	events.Tree.Refresh(t.preset)
}

// Loading reports whether a fetch is outstanding.
func (t *EntityTree) Loading() bool { return t.loading }

// Loaded reports whether data has arrived at least once.
func (t *EntityTree) Loaded() bool { return t.loaded }

// Err returns the error from the most recent fetch.
func (t *EntityTree) Err() error { return t.err }

// SetRefreshedHandler registers fn to run after fresh data is applied.
func (t *EntityTree) SetRefreshedHandler(fn func()) {
	t.onRefreshed = fn
}

// SetEntities applies fetched entities. Results for an older request are
// ignored and false is returned.
func (t *EntityTree) SetEntities(seq int, ents []catalog.Entity, err error) bool {
	if t.destroyed || seq != t.seq {
		events.Backend.Stale(backend.KindEntities.String(), t.preset, seq)
		return false
	}
	t.loading = false
	t.err = err
	if err != nil {
		return true
	}
	t.build(ents)
	t.loaded = true
	events.Tree.Loaded(t.preset, len(ents))
	if t.onRefreshed != nil {
		t.onRefreshed()
	}
	return true
}

func (t *EntityTree) build(ents []catalog.Entity) {
	for key, item := range t.byKey {
		t.expanded[key] = item.Expanded
	}
	t.roots = nil
	t.byKey = map[string]*TreeItem{}
	t.byEntity = map[entityKey]*TreeItem{}

	groups := t.query.Hierarchy
	labelField := "code"
	if len(groups) > 0 {
		labelField = groups[len(groups)-1]
		groups = groups[:len(groups)-1]
	}

	var groupItems []*TreeItem
	for i := range ents {
		ent := ents[i]
		var parent *TreeItem
		for _, field := range groups {
			value := ent.Field(field)
			segment, label, linked := groupSegment(field, value)
			key := joinKey(parent, segment)
			item, ok := t.byKey[key]
			if !ok {
				item = NewTreeItem(key, label, linked)
				item.Expanded = t.expanded[key]
				t.attach(parent, item)
				groupItems = append(groupItems, item)
			}
			parent = item
		}
		label := catalog.DisplayValue(ent.Field(labelField))
		if label == "" {
			label = ent.Code
		}
		key := joinKey(parent, fmt.Sprintf("%s:%d", ent.Type, ent.ID))
		leaf := NewTreeItem(key, label, &ent)
		leaf.Expanded = t.expanded[key]
		t.attach(parent, leaf)
		t.byEntity[entityKey{ent.Type, ent.ID}] = leaf
	}
	for _, item := range groupItems {
		if item.Entity == nil {
			continue
		}
		k := entityKey{item.Entity.Type, item.Entity.ID}
		if _, taken := t.byEntity[k]; !taken {
			t.byEntity[k] = item
		}
	}
	sortItems(t.roots)
}

func (t *EntityTree) attach(parent, item *TreeItem) {
	if parent == nil {
		t.roots = append(t.roots, item)
	} else {
		parent.AddChild(item)
	}
	t.byKey[item.Key] = item
}

func groupSegment(field string, value interface{}) (segment, label string, linked *catalog.Entity) {
	if ref, ok := catalog.AsRef(value); ok {
		label = ref.Name
		if label == "" {
			label = ref.String()
		}
		return field + "=" + ref.String(), label, &catalog.Entity{Type: ref.Type, ID: ref.ID, Code: ref.Name}
	}
	label = catalog.DisplayValue(value)
	if label == "" {
		return field + "=", "(none)", nil
	}
	return field + "=" + label, label, nil
}

func joinKey(parent *TreeItem, segment string) string {
	if parent == nil {
		return segment
	}
	return parent.Key + "/" + segment
}

// grouping rows sort before leaves, then by label
func sortItems(items []*TreeItem) {
	sort.SliceStable(items, func(i, j int) bool {
		gi, gj := items[i].HasChildren(), items[j].HasChildren()
		if gi != gj {
			return gi
		}
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
	for _, item := range items {
		sortItems(item.children)
	}
}

// Roots returns the top-level items.
func (t *EntityTree) Roots() []*TreeItem { return t.roots }

// Item resolves a stable key. Unknown keys return nil.
func (t *EntityTree) Item(key string) *TreeItem {
	if key == "" {
		return nil
	}
	return t.byKey[key]
}

// ItemFromEntity finds the item representing an entity.
func (t *EntityTree) ItemFromEntity(entityType string, id int64) *TreeItem {
	return t.byEntity[entityKey{entityType, id}]
}

// Len returns the number of items in the tree.
func (t *EntityTree) Len() int { return len(t.byKey) }

// Visible flattens the tree in display order, descending into expanded items.
func (t *EntityTree) Visible() []*TreeItem {
	var out []*TreeItem
	var walk func(items []*TreeItem)
	walk = func(items []*TreeItem) {
		for _, item := range items {
			out = append(out, item)
			if item.Expanded {
				walk(item.children)
			}
		}
	}
	walk(t.roots)
	return out
}

// ExpandTo expands every ancestor of item so it becomes visible.
func (t *EntityTree) ExpandTo(item *TreeItem) {
	for p := item.Parent(); p != nil; p = p.parent {
		p.Expanded = true
	}
}

// Destroy stops the tree from accepting further data.
func (t *EntityTree) Destroy() {
	t.destroyed = true
	t.roots = nil
	t.byKey = map[string]*TreeItem{}
	t.byEntity = map[entityKey]*TreeItem{}
	t.onRefreshed = nil
}
