package loader

import (
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

// TreeModel is the hierarchical data behind one preset.
type TreeModel interface {
	LoadData()
	RefreshData()
	Item(key string) *state.TreeItem
	ItemFromEntity(entityType string, id int64) *state.TreeItem
	SetRefreshedHandler(fn func())
	Destroy()
}

// TreeView displays a TreeModel and owns its selection. Select and
// ClearSelection notify the registered handler synchronously when the
// selection actually changes.
type TreeView interface {
	SelectedItem() *state.TreeItem
	Select(item *state.TreeItem) error
	ClearSelection() error
	ScrollTo(item *state.TreeItem) error
	SetSelectionChangedHandler(fn func())
}

// TabBar shows one tab per preset. SetCurrent notifies the registered
// handler synchronously when the active tab changes.
type TabBar interface {
	SetCurrent(name string) error
	SetTabChangedHandler(fn func(name string))
}

// PublishModel lists the folders and publishes for an entity.
type PublishModel interface {
	LoadData(entity *catalog.Entity, folders []*state.TreeItem)
	RefreshData()
	Destroy()
}

// ProxyModel filters the publish model by publish type.
type ProxyModel interface {
	SetFilterByTypeIDs(ids []int64)
}

// TypeModel is the publish type checklist.
type TypeModel interface {
	GetSelectedTypes() []int64
	SetChangedHandler(fn func())
	Destroy()
}

// PublishView displays the filtered publish list.
type PublishView interface {
	SelectedPublish() *state.PublishItem
	SetSelectionChangedHandler(fn func())
	SetActivatedHandler(fn func(item state.PublishItem))
}

// Details shows information about one publish.
type Details interface {
	LoadDetails(item state.PublishItem)
	Clear()
}
