package dispatcher

import (
	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

// Result reports which stores changed after an event was applied.
type Result struct {
	TreeUpdated      string
	PublishesUpdated bool
	TypesUpdated     bool
	Stale            bool
}

// Dispatcher routes backend events into the stores that requested them.
type Dispatcher struct {
	trees     map[string]*state.EntityTree
	publishes *state.PublishStore
	types     *state.TypeStore
}

func New(publishes *state.PublishStore, types *state.TypeStore) *Dispatcher {
	return &Dispatcher{trees: map[string]*state.EntityTree{}, publishes: publishes, types: types}
}

// AddTree registers the tree that owns entity results for preset.
func (d *Dispatcher) AddTree(preset string, tree *state.EntityTree) {
	d.trees[preset] = tree
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	req := evt.Request
	switch req.Kind {
	case backend.KindEntities:
		tree, ok := d.trees[req.Preset]
		if !ok {
			res.Stale = true
			return res
		}
		ents, _ := evt.Data.([]catalog.Entity)
		if !tree.SetEntities(req.Seq, ents, evt.Err) {
			res.Stale = true
			return res
		}
		res.TreeUpdated = req.Preset
	case backend.KindPublishes:
		if d.publishes == nil {
			return res
		}
		pubs, _ := evt.Data.([]catalog.Publish)
		if !d.publishes.SetPublishes(req.Seq, pubs, evt.Err) {
			res.Stale = true
			return res
		}
		if d.types != nil && evt.Err == nil {
			d.types.UpdateCounts(pubs)
		}
		res.PublishesUpdated = true
	case backend.KindPublishTypes:
		if d.types == nil {
			return res
		}
		types, _ := evt.Data.([]catalog.PublishType)
		if !d.types.SetTypes(req.Seq, types, evt.Err) {
			res.Stale = true
			return res
		}
		if d.publishes != nil {
			d.types.UpdateCounts(d.publishes.Publishes())
		}
		res.TypesUpdated = true
	}
	return res
}
