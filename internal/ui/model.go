package ui

import (
	"errors"
	"reflect"
	"time"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/data/dispatcher"
	"github.com/atomicstack/pipeline-loader/internal/loader"
	"github.com/atomicstack/pipeline-loader/internal/state"
	"github.com/atomicstack/pipeline-loader/internal/theme"
	"github.com/atomicstack/pipeline-loader/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Pane identifies which part of the panel receives keys.
type Pane int

const (
	PaneTree Pane = iota
	PanePublishes
	PaneTypes
)

var paneNames = map[Pane]string{
	PaneTree:      "tree",
	PanePublishes: "publishes",
	PaneTypes:     "types",
}

func (p Pane) String() string {
	return paneNames[p]
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Backend is the fetch worker the model submits requests to and drains
// results from. *backend.Worker satisfies it. A nil Events channel means
// results are delivered by other means, as in tests.
type Backend interface {
	Submit(req backend.Request) bool
	Events() <-chan backend.Event
}

// Config holds the presentation options and the preset definitions.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Presets    []map[string]interface{}
	Context    catalog.Context
}

// Model implements the Bubble Tea model for the loader panel.
type Model struct {
	controller *loader.Controller
	tabs       *tabBar
	trees      map[string]*treeView
	publishes  *publishView
	types      *typeList
	details    *detailsPane

	publishStore *state.PublishStore
	proxy        *state.PublishProxy
	typeStore    *state.TypeStore
	dispatcher   *dispatcher.Dispatcher
	requester    state.Requester

	backend        Backend
	backendState   map[backend.Kind]error
	backendLastErr string

	focus     Pane
	searching bool
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	spinning  bool
	bus       *command.Bus

	filterCursor      cursor.Model
	filterCursorDirty bool

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the stores, one tree per preset and the controller that
// coordinates them, then starts the controller. Preset errors are returned
// before any UI is shown.
func NewModel(cfg Config, b Backend) (*Model, error) {
	m := &Model{
		trees:        map[string]*treeView{},
		tabs:         newTabBar(),
		details:      newDetailsPane(),
		backend:      b,
		backendState: map[backend.Kind]error{},
		keys:         defaultKeyMap(),
		help:         help.New(),
		bus:          command.New(),
		showFooter:   cfg.ShowFooter,
		verbose:      cfg.Verbose,
		focus:        PaneTree,
	}
	if b != nil {
		m.requester = b
	}
	m.publishStore = state.NewPublishStore(m.requester)
	m.proxy = state.NewPublishProxy(m.publishStore)
	m.typeStore = state.NewTypeStore(m.requester)
	m.dispatcher = dispatcher.New(m.publishStore, m.typeStore)
	m.publishes = newPublishView(m.proxy)
	m.types = newTypeList(m.typeStore)

	registry, err := loader.LoadPresets(cfg.Presets, cfg.Context, loader.PresetFactoryFunc(m.buildPreset))
	if err != nil {
		return nil, err
	}
	m.tabs.setNames(registry.Names())
	controller, err := loader.NewController(loader.Options{
		Presets:     registry,
		Tabs:        m.tabs,
		Publishes:   m.publishStore,
		Proxy:       m.proxy,
		Types:       m.typeStore,
		Details:     m.details,
		PublishView: m.publishes,
		Context:     cfg.Context,
	})
	if err != nil {
		return nil, err
	}
	m.controller = controller
	m.typeStore.LoadData()
	controller.Start()

	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	if styles.Loading != nil {
		s.Style = styles.Loading.Copy()
	}
	m.spinner = s
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.syncPanes()
	m.registerHandlers()
	return m, nil
}

// buildPreset creates the tree model and view for one preset and registers
// the tree with the dispatcher so fetched entities reach it.
func (m *Model) buildPreset(cfg loader.PresetConfig) (loader.TreeModel, loader.TreeView, error) {
	if cfg.Caption == "" {
		return nil, nil, errors.New("preset caption is empty")
	}
	tree := state.NewEntityTree(cfg.Caption, cfg.Query(), m.requester)
	m.dispatcher.AddTree(cfg.Caption, tree)
	view := newTreeView(cfg.Caption, tree)
	m.trees[cfg.Caption] = view
	return tree, view, nil
}

// Controller exposes the loader controller.
func (m *Model) Controller() *loader.Controller {
	return m.controller
}

// Close tears down the controller and its models.
func (m *Model) Close() {
	if m.controller != nil {
		m.controller.Close()
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.waitForBackend(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.ensureSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncPanes()
	if cmd := m.ensureSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// syncPanes refreshes the rows of the panes fed by shared stores. Trees sync
// themselves when their data or selection changes.
func (m *Model) syncPanes() {
	m.types.sync()
	m.publishes.sync()
}

func (m *Model) currentTree() *treeView {
	if m.controller == nil {
		return nil
	}
	return m.trees[m.controller.Current()]
}

func (m *Model) loading() bool {
	if m.publishStore.Loading() || m.typeStore.Loading() {
		return true
	}
	if p := m.controller.CurrentPreset(); p != nil {
		if tree, ok := p.Model.(*state.EntityTree); ok && tree.Loading() {
			return true
		}
	}
	return false
}
