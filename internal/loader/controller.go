package loader

import (
	"errors"
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

// Options lists the collaborators a Controller coordinates. Details and
// PublishView may be nil.
type Options struct {
	Presets     *Registry
	Tabs        TabBar
	Publishes   PublishModel
	Proxy       ProxyModel
	Types       TypeModel
	Details     Details
	PublishView PublishView
	Context     catalog.Context
}

// Controller routes tab and tree selection, keeps history and breadcrumbs,
// and drives the publish area.
type Controller struct {
	presets     *Registry
	tabs        TabBar
	publishes   PublishModel
	proxy       ProxyModel
	types       TypeModel
	details     Details
	publishView PublishView
	context     catalog.Context

	history     History
	current     string
	mode        Mode
	breadcrumbs string
	infoVisible bool
	pendingHome string

	// tree key the publish area was last loaded for
	shownKey string

	// bumped on every tree selection notification; lets a combo operation
	// tell whether its view reported the selection
	selectionEvents int
	closed          bool
}

// NewController wires the controller into its collaborators' notifications.
func NewController(opts Options) (*Controller, error) {
	switch {
	case opts.Presets.Len() == 0:
		return nil, errors.New("at least one preset is required")
	case opts.Tabs == nil:
		return nil, errors.New("tab bar is required")
	case opts.Publishes == nil:
		return nil, errors.New("publish model is required")
	case opts.Proxy == nil:
		return nil, errors.New("publish proxy is required")
	case opts.Types == nil:
		return nil, errors.New("publish type model is required")
	}
	c := &Controller{
		presets:     opts.Presets,
		tabs:        opts.Tabs,
		publishes:   opts.Publishes,
		proxy:       opts.Proxy,
		types:       opts.Types,
		details:     opts.Details,
		publishView: opts.PublishView,
		context:     opts.Context,
	}
	for _, p := range c.presets.All() {
		name := p.Name
		p.View.SetSelectionChangedHandler(func() {
			if name == c.current {
				c.OnTreeSelectionChanged()
			}
		})
		p.Model.SetRefreshedHandler(func() {
			c.OnTreeRefreshed(name)
		})
	}
	c.tabs.SetTabChangedHandler(c.OnTabChanged)
	c.types.SetChangedHandler(c.OnTypeFilterChanged)
	if c.publishView != nil {
		c.publishView.SetSelectionChangedHandler(c.OnPublishSelectionChanged)
		c.publishView.SetActivatedHandler(func(item state.PublishItem) {
			if err := c.OnPublishActivated(item); err != nil {
				logging.Error(err)
			}
		})
	}
	return c, nil
}

// Start shows the first preset and navigates home. The initial state is not
// recorded unless home navigation itself produced a selection.
func (c *Controller) Start() {
	first := c.presets.First()
	c.current = first.Name
	before := c.selectionEvents
	c.NavigateHome()
	if c.selectionEvents == before {
		item := c.selectedItem()
		c.updateBreadcrumbs(item)
		c.loadPublishesFor(item)
	}
}

// Current returns the active preset name.
func (c *Controller) Current() string { return c.current }

// CurrentPreset returns the active preset.
func (c *Controller) CurrentPreset() *Preset { return c.presets.Get(c.current) }

// Presets returns the registry.
func (c *Controller) Presets() *Registry { return c.presets }

// Breadcrumbs returns the label path of the current selection.
func (c *Controller) Breadcrumbs() string { return c.breadcrumbs }

// History exposes the navigation log for display.
func (c *Controller) History() *History { return &c.history }

// CanGoBack reports whether the back control is enabled.
func (c *Controller) CanGoBack() bool { return c.history.CanGoBack() }

// CanGoForward reports whether the forward control is enabled.
func (c *Controller) CanGoForward() bool { return c.history.CanGoForward() }

// InfoVisible reports whether the details pane is shown.
func (c *Controller) InfoVisible() bool { return c.infoVisible }

// OnTabChanged handles the tab bar switching to name, from a user click or
// from SelectItem.
func (c *Controller) OnTabChanged(name string) {
	p := c.presets.Get(name)
	if p == nil {
		logging.Error(fmt.Errorf("tab changed: %w %q", ErrUnknownPreset, name))
		return
	}
	c.current = name
	events.Tab.Changed(name, c.programmatic(), c.replaying())
	if !c.replaying() {
		p.Model.RefreshData()
	}
	item := p.View.SelectedItem()
	if c.programmatic() {
		c.updateBreadcrumbs(item)
		return
	}
	c.pendingHome = ""
	c.updateBreadcrumbs(item)
	c.record(name, item)
	c.loadPublishesFor(item)
}

// OnTreeSelectionChanged handles a selection change in the active tree view.
// Breadcrumbs, history and the publish reload happen in that order.
func (c *Controller) OnTreeSelectionChanged() {
	c.selectionEvents++
	p := c.presets.Get(c.current)
	if p == nil {
		return
	}
	if c.mode == ModeIdle {
		c.pendingHome = ""
	}
	item := p.View.SelectedItem()
	events.Tree.Selected(p.Name, itemKey(item))
	c.updateBreadcrumbs(item)
	c.record(p.Name, item)
	c.loadPublishesFor(item)
}

// SelectItem switches to tab and selects item there, or clears the selection
// when item is nil. The tab change half is not recorded; the selection half
// is handled by OnTreeSelectionChanged as the view reports it.
func (c *Controller) SelectItem(tab string, item *state.TreeItem) error {
	p := c.presets.Get(tab)
	if p == nil {
		return fmt.Errorf("select item: %w %q", ErrUnknownPreset, tab)
	}
	restore := c.enter(ModeProgrammaticCombo)
	defer restore()

	switched := false
	if tab != c.current {
		if err := c.tabs.SetCurrent(tab); err != nil {
			return fmt.Errorf("switch to %q: %w", tab, err)
		}
		switched = true
	}
	before := c.selectionEvents
	if item != nil {
		if err := p.View.ScrollTo(item); err != nil {
			return fmt.Errorf("scroll to %q: %w", item.Key, err)
		}
		if err := p.View.Select(item); err != nil {
			return fmt.Errorf("select %q: %w", item.Key, err)
		}
	} else if err := p.View.ClearSelection(); err != nil {
		return fmt.Errorf("clear selection in %q: %w", tab, err)
	}
	if switched && c.selectionEvents == before {
		// the view already held this selection so it stayed silent
		c.OnTreeSelectionChanged()
	}
	return nil
}

// NavigateBack replays the previous history entry.
func (c *Controller) NavigateBack() {
	entry, ok := c.history.Back()
	if !ok {
		return
	}
	events.History.Navigate(events.HistoryBack, entry.Preset, entry.ItemKey, c.history.Index())
	c.replay(entry)
}

// NavigateForward replays the next history entry.
func (c *Controller) NavigateForward() {
	entry, ok := c.history.Forward()
	if !ok {
		return
	}
	events.History.Navigate(events.HistoryForward, entry.Preset, entry.ItemKey, c.history.Index())
	c.replay(entry)
}

func (c *Controller) replay(entry Entry) {
	restore := c.enter(ModeReplayingHistory)
	defer restore()
	c.pendingHome = ""
	p := c.presets.Get(entry.Preset)
	if p == nil {
		logging.Error(fmt.Errorf("replay history: %w %q", ErrUnknownPreset, entry.Preset))
		return
	}
	// a vanished item replays as no selection
	item := p.Model.Item(entry.ItemKey)
	if err := c.SelectItem(entry.Preset, item); err != nil {
		logging.Error(err)
	}
}

// NavigateHome selects the execution context's entity. Presets are searched
// in configuration order: an exact item match wins, then the first preset of
// the right entity type with no selection, then the first preset.
func (c *Controller) NavigateHome() {
	c.pendingHome = ""
	if target, item, exact := c.findHome(); target != nil {
		events.History.Home(target.Name, itemKey(item), exact)
		if err := c.SelectItem(target.Name, item); err != nil {
			logging.Error(err)
		}
		if !exact {
			// tree may still be loading; retried from OnTreeRefreshed
			c.pendingHome = target.Name
		}
		return
	}
	first := c.presets.First()
	events.History.Home(first.Name, "", false)
	if err := c.SelectItem(first.Name, nil); err != nil {
		logging.Error(err)
	}
}

func (c *Controller) findHome() (*Preset, *state.TreeItem, bool) {
	ent := c.context.Entity
	if ent == nil {
		return nil, nil, false
	}
	var typeMatch *Preset
	for _, p := range c.presets.All() {
		if p.EntityType != ent.Type {
			continue
		}
		if item := p.Model.ItemFromEntity(ent.Type, ent.ID); item != nil {
			return p, item, true
		}
		if typeMatch == nil {
			typeMatch = p
		}
	}
	return typeMatch, nil, false
}

// OnTreeRefreshed runs when a preset's tree has applied fresh data.
func (c *Controller) OnTreeRefreshed(name string) {
	if c.closed {
		return
	}
	if name == c.pendingHome && name == c.current && c.context.Entity != nil {
		c.pendingHome = ""
		p := c.presets.Get(name)
		if item := p.Model.ItemFromEntity(c.context.Entity.Type, c.context.Entity.ID); item != nil {
			events.History.Home(name, item.Key, true)
			if err := c.SelectItem(name, item); err != nil {
				logging.Error(err)
			}
			return
		}
	}
	if name != c.current {
		return
	}
	p := c.presets.Get(name)
	if c.shownKey != "" && p.Model.Item(c.shownKey) == nil {
		c.dropVanishedSelection(p)
		return
	}
	c.updateBreadcrumbs(c.selectedItem())
}

// dropVanishedSelection clears a selection the last refresh removed, so the
// breadcrumbs, history and publish area all fall back to the empty view.
func (c *Controller) dropVanishedSelection(p *Preset) {
	before := c.selectionEvents
	if err := p.View.ClearSelection(); err != nil {
		logging.Error(fmt.Errorf("clear vanished selection in %q: %w", p.Name, err))
	}
	if c.selectionEvents == before {
		c.OnTreeSelectionChanged()
	}
}

// OnTypeFilterChanged pushes the checked publish types to the proxy.
func (c *Controller) OnTypeFilterChanged() {
	c.proxy.SetFilterByTypeIDs(c.types.GetSelectedTypes())
}

// OnInfoToggled shows or hides the details pane. When shown it follows the
// selected publish.
func (c *Controller) OnInfoToggled(visible bool) {
	c.infoVisible = visible
	events.UI.Info(visible)
	if visible {
		c.syncDetails()
	}
}

// OnPublishSelectionChanged keeps the details pane on the selected publish.
func (c *Controller) OnPublishSelectionChanged() {
	if c.infoVisible {
		c.syncDetails()
	}
}

// OnPublishActivated opens a folder row in the tree, or shows details for a
// publish row.
func (c *Controller) OnPublishActivated(item state.PublishItem) error {
	if !item.Folder {
		if !c.infoVisible {
			c.OnInfoToggled(true)
		}
		return nil
	}
	p := c.presets.Get(c.current)
	if p == nil {
		return nil
	}
	target := p.Model.Item(item.TreeKey)
	if target == nil {
		return nil
	}
	return c.SelectItem(c.current, target)
}

// Close tears down every collaborator model. The controller ignores further
// refresh notifications.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.publishes.Destroy()
	if c.details != nil {
		c.details.Clear()
	}
	c.types.Destroy()
	for _, p := range c.presets.All() {
		p.Model.Destroy()
	}
}

func (c *Controller) syncDetails() {
	if c.details == nil {
		return
	}
	var selected *state.PublishItem
	if c.publishView != nil {
		selected = c.publishView.SelectedPublish()
	}
	if selected == nil {
		c.details.Clear()
		return
	}
	events.Publish.Details(selected.ID())
	c.details.LoadDetails(*selected)
}

func (c *Controller) record(name string, item *state.TreeItem) {
	if c.replaying() {
		return
	}
	c.history.Record(Entry{Preset: name, ItemKey: itemKey(item)})
	events.History.Record(name, itemKey(item), c.history.Index(), c.history.Len())
}

func (c *Controller) updateBreadcrumbs(item *state.TreeItem) {
	c.breadcrumbs = BuildBreadcrumbs(item)
}

func (c *Controller) loadPublishesFor(item *state.TreeItem) {
	var entity *catalog.Entity
	var folders []*state.TreeItem
	if item != nil {
		entity = item.Entity
		folders = item.Children()
	}
	c.shownKey = itemKey(item)
	c.publishes.LoadData(entity, folders)
	c.publishes.RefreshData()
}

func (c *Controller) selectedItem() *state.TreeItem {
	if p := c.presets.Get(c.current); p != nil {
		return p.View.SelectedItem()
	}
	return nil
}

func itemKey(item *state.TreeItem) string {
	if item == nil {
		return ""
	}
	return item.Key
}
