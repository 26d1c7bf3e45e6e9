package loader

import (
	"errors"
	"testing"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

type fakeTree struct {
	byKey     map[string]*state.TreeItem
	byEntity  map[catalog.EntityRef]*state.TreeItem
	loads     int
	refreshes int
	destroyed bool
	onRefresh func()
}

func newFakeTree(roots ...*state.TreeItem) *fakeTree {
	tree := &fakeTree{}
	tree.setRoots(roots...)
	return tree
}

func (f *fakeTree) setRoots(roots ...*state.TreeItem) {
	f.byKey = map[string]*state.TreeItem{}
	f.byEntity = map[catalog.EntityRef]*state.TreeItem{}
	var walk func(items []*state.TreeItem)
	walk = func(items []*state.TreeItem) {
		for _, item := range items {
			f.byKey[item.Key] = item
			if item.Entity != nil {
				f.byEntity[catalog.EntityRef{Type: item.Entity.Type, ID: item.Entity.ID}] = item
			}
			walk(item.Children())
		}
	}
	walk(roots)
}

func (f *fakeTree) LoadData()    { f.loads++ }
func (f *fakeTree) RefreshData() { f.refreshes++ }
func (f *fakeTree) Destroy()     { f.destroyed = true }

func (f *fakeTree) Item(key string) *state.TreeItem { return f.byKey[key] }

func (f *fakeTree) ItemFromEntity(entityType string, id int64) *state.TreeItem {
	return f.byEntity[catalog.EntityRef{Type: entityType, ID: id}]
}

func (f *fakeTree) SetRefreshedHandler(fn func()) { f.onRefresh = fn }

func (f *fakeTree) refreshed() {
	if f.onRefresh != nil {
		f.onRefresh()
	}
}

type fakeView struct {
	selected *state.TreeItem
	onChange func()
	scrolled []string
	failWith error
	panicMsg string
}

func (v *fakeView) SelectedItem() *state.TreeItem { return v.selected }

func (v *fakeView) Select(item *state.TreeItem) error {
	if v.panicMsg != "" {
		panic(v.panicMsg)
	}
	if v.failWith != nil {
		return v.failWith
	}
	v.set(item)
	return nil
}

func (v *fakeView) ClearSelection() error {
	if v.failWith != nil {
		return v.failWith
	}
	v.set(nil)
	return nil
}

func (v *fakeView) ScrollTo(item *state.TreeItem) error {
	v.scrolled = append(v.scrolled, item.Key)
	return nil
}

func (v *fakeView) SetSelectionChangedHandler(fn func()) { v.onChange = fn }

// userSelect mimics a click in the view.
func (v *fakeView) userSelect(item *state.TreeItem) {
	v.set(item)
}

func (v *fakeView) set(item *state.TreeItem) {
	if item == v.selected {
		return
	}
	v.selected = item
	if v.onChange != nil {
		v.onChange()
	}
}

type fakeTabs struct {
	current  string
	onChange func(string)
}

func (f *fakeTabs) SetCurrent(name string) error {
	if name == f.current {
		return nil
	}
	f.current = name
	if f.onChange != nil {
		f.onChange(name)
	}
	return nil
}

func (f *fakeTabs) SetTabChangedHandler(fn func(string)) { f.onChange = fn }

// click mimics the user choosing a tab.
func (f *fakeTabs) click(name string) {
	_ = f.SetCurrent(name)
}

type publishLoad struct {
	entity  *catalog.Entity
	folders []*state.TreeItem
}

type fakePublishes struct {
	loads     []publishLoad
	refreshes int
	destroyed bool
}

func (f *fakePublishes) LoadData(entity *catalog.Entity, folders []*state.TreeItem) {
	f.loads = append(f.loads, publishLoad{entity: entity, folders: folders})
}

func (f *fakePublishes) RefreshData() { f.refreshes++ }
func (f *fakePublishes) Destroy()     { f.destroyed = true }

func (f *fakePublishes) last() publishLoad {
	if len(f.loads) == 0 {
		return publishLoad{}
	}
	return f.loads[len(f.loads)-1]
}

type fakeProxy struct {
	pushes [][]int64
}

func (f *fakeProxy) SetFilterByTypeIDs(ids []int64) {
	f.pushes = append(f.pushes, ids)
}

type fakeTypes struct {
	selected  []int64
	onChange  func()
	destroyed bool
}

func (f *fakeTypes) GetSelectedTypes() []int64   { return f.selected }
func (f *fakeTypes) SetChangedHandler(fn func()) { f.onChange = fn }
func (f *fakeTypes) Destroy()                    { f.destroyed = true }

func (f *fakeTypes) check(ids ...int64) {
	f.selected = ids
	if f.onChange != nil {
		f.onChange()
	}
}

type fakeDetails struct {
	loaded []state.PublishItem
	clears int
}

func (f *fakeDetails) LoadDetails(item state.PublishItem) { f.loaded = append(f.loaded, item) }
func (f *fakeDetails) Clear()                             { f.clears++ }

type fakePublishView struct {
	selected   *state.PublishItem
	onChange   func()
	onActivate func(state.PublishItem)
}

func (f *fakePublishView) SelectedPublish() *state.PublishItem            { return f.selected }
func (f *fakePublishView) SetSelectionChangedHandler(fn func())           { f.onChange = fn }
func (f *fakePublishView) SetActivatedHandler(fn func(state.PublishItem)) { f.onActivate = fn }

func (f *fakePublishView) choose(item *state.PublishItem) {
	f.selected = item
	if f.onChange != nil {
		f.onChange()
	}
}

type fixture struct {
	c       *Controller
	trees   map[string]*fakeTree
	views   map[string]*fakeView
	tabs    *fakeTabs
	pubs    *fakePublishes
	proxy   *fakeProxy
	types   *fakeTypes
	details *fakeDetails
	pview   *fakePublishView
}

func entityItem(key, label, typ string, id int64) *state.TreeItem {
	return state.NewTreeItem(key, label, &catalog.Entity{Type: typ, ID: id, Code: label})
}

func presetEntries() []map[string]interface{} {
	entry := func(caption, entityType string) map[string]interface{} {
		return map[string]interface{}{
			"caption":     caption,
			"entity_type": entityType,
			"hierarchy":   []interface{}{"code"},
			"filters":     []interface{}{},
		}
	}
	return []map[string]interface{}{
		entry("Assets", "Asset"),
		entry("Shots", "Shot"),
		entry("Tasks", "Task"),
	}
}

// defaultTrees builds:
//
//	Assets: Character > hero
//	Shots:  Root > SEQ_A > SHOT_010, SHOT_020
//	Tasks:  anim
func defaultTrees() map[string]*fakeTree {
	character := state.NewTreeItem("sg_asset_type=Character", "Character", nil)
	character.AddChild(entityItem("sg_asset_type=Character/Asset:200", "hero", "Asset", 200))

	root := entityItem("project=Project:1", "Root", "Project", 1)
	seq := root.AddChild(entityItem("project=Project:1/sg_sequence=Sequence:10", "SeqA", "Sequence", 10))
	seq.AddChild(entityItem(seq.Key+"/Shot:100", "Shot010", "Shot", 100))
	seq.AddChild(entityItem(seq.Key+"/Shot:101", "Shot020", "Shot", 101))

	return map[string]*fakeTree{
		"Assets": newFakeTree(character),
		"Shots":  newFakeTree(root),
		"Tasks":  newFakeTree(entityItem("Task:400", "anim", "Task", 400)),
	}
}

func newFixture(t *testing.T, ctx catalog.Context, trees map[string]*fakeTree) *fixture {
	t.Helper()
	if trees == nil {
		trees = defaultTrees()
	}
	f := &fixture{
		trees:   trees,
		views:   map[string]*fakeView{},
		tabs:    &fakeTabs{current: "Assets"},
		pubs:    &fakePublishes{},
		proxy:   &fakeProxy{},
		types:   &fakeTypes{},
		details: &fakeDetails{},
		pview:   &fakePublishView{},
	}
	factory := PresetFactoryFunc(func(cfg PresetConfig) (TreeModel, TreeView, error) {
		tree, ok := f.trees[cfg.Caption]
		if !ok {
			return nil, nil, errors.New("no fake tree for " + cfg.Caption)
		}
		view := &fakeView{}
		f.views[cfg.Caption] = view
		return tree, view, nil
	})
	reg, err := LoadPresets(presetEntries(), ctx, factory)
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	c, err := NewController(Options{
		Presets:     reg,
		Tabs:        f.tabs,
		Publishes:   f.pubs,
		Proxy:       f.proxy,
		Types:       f.types,
		Details:     f.details,
		PublishView: f.pview,
		Context:     ctx,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	f.c = c
	return f
}

func (f *fixture) item(preset string, typ string, id int64) *state.TreeItem {
	return f.trees[preset].ItemFromEntity(typ, id)
}

func (f *fixture) assertHistory(t *testing.T, index int, want ...Entry) {
	t.Helper()
	got := f.c.History().Entries()
	if len(got) != len(want) {
		t.Fatalf("expected %d history entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("history entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if f.c.History().Index() != index {
		t.Fatalf("expected history index %d, got %d", index, f.c.History().Index())
	}
	assertButtons(t, f.c)
}

// back disabled iff index <= 1, forward disabled iff index == len
func assertButtons(t *testing.T, c *Controller) {
	t.Helper()
	h := c.History()
	if c.CanGoBack() != (h.Index() > 1) {
		t.Fatalf("back enablement %v inconsistent with index %d", c.CanGoBack(), h.Index())
	}
	if c.CanGoForward() != (h.Index() < h.Len()) {
		t.Fatalf("forward enablement %v inconsistent with index %d/len %d", c.CanGoForward(), h.Index(), h.Len())
	}
}
