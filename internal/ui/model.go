package ui

import (
	"reflect"

	"github.com/atomicstack/tmux-context-menu/internal/backend"
	"github.com/atomicstack/tmux-context-menu/internal/contextmenu"
	"github.com/atomicstack/tmux-context-menu/internal/keybinding"
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	"github.com/atomicstack/tmux-context-menu/internal/popup"
	"github.com/atomicstack/tmux-context-menu/internal/theme"
	"github.com/atomicstack/tmux-context-menu/internal/ui/command"
	uistate "github.com/atomicstack/tmux-context-menu/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

type msgHandler func(tea.Msg) tea.Cmd

// Config carries everything the model needs from the caller.
type Config struct {
	Items      []menu.Item
	Context    menu.Context
	ActionName string
	Action     menu.Action
	Registry   *keybinding.Registry
	Styles     *theme.Styles
	Watcher    *backend.Watcher
	ShowFooter bool
	// Width and Height pin the viewport; zero means follow the terminal.
	Width   int
	Height  int
	AnchorX int
	AnchorY int
}

// Result is the final state of a run, read after the program exits.
type Result struct {
	Outcome contextmenu.OutcomeKind
	Item    menu.Item
	Output  string
	Info    string
	Reason  string
}

// Model implements the Bubble Tea model hosting the context menu.
type Model struct {
	menu     contextmenu.Menu[menu.Item]
	filter   uistate.Filter
	registry *keybinding.Registry
	bus      *command.Bus
	styles   *theme.Styles

	ctx        menu.Context
	actionName string
	action     menu.Action

	backend    *backend.Watcher
	anchorErr  string
	width      int
	height     int
	fixedSize  bool
	showFooter bool

	errMsg  string
	infoMsg string
	pending bool
	done    bool
	result  Result

	filterCursor      cursor.Model
	filterCursorDirty bool
	help              help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with the candidate items and configuration.
func NewModel(cfg Config) *Model {
	styles := cfg.Styles
	if styles == nil {
		styles = theme.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	m := &Model{
		filter:     uistate.NewFilter(cfg.Items),
		registry:   registry,
		bus:        command.New(),
		styles:     styles,
		ctx:        cfg.Context,
		actionName: cfg.ActionName,
		action:     cfg.Action,
		backend:    cfg.Watcher,
		showFooter: cfg.ShowFooter,
		help:       help.New(),
	}
	if m.actionName == "" {
		m.actionName = menu.ActionPrint
	}
	if m.action == nil {
		m.action = menu.PrintAction
	}
	m.menu = contextmenu.New(itemRenderer, cfg.Items)
	m.applyPopup(popup.AnchorMsg{X: cfg.AnchorX, Y: cfg.AnchorY})
	if cfg.Width > 0 && cfg.Height > 0 {
		m.width, m.height, m.fixedSize = cfg.Width, cfg.Height, true
		m.syncViewport()
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	events.Menu.Open(m.menu.Len())
	return m
}

// Init is part of the tea.Model interface. It shows the popup and starts
// listening for anchor updates.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{showPopup}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func showPopup() tea.Msg {
	return popup.ShowMsg{}
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
		reflect.TypeOf(command.DoneMsg{}):   m.handleActionDoneMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(popup.ShowMsg{}):     m.handlePopupMsg,
		reflect.TypeOf(popup.HideMsg{}):     m.handlePopupMsg,
		reflect.TypeOf(popup.AnchorMsg{}):   m.handlePopupMsg,
		reflect.TypeOf(popup.ViewportMsg{}): m.handlePopupMsg,
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

func (m *Model) handlePopupMsg(msg tea.Msg) tea.Cmd {
	pmsg, ok := msg.(popup.Msg)
	if !ok {
		return nil
	}
	return m.applyPopup(pmsg)
}

func (m *Model) applyPopup(msg popup.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.menu, _, cmd = m.menu.Update(msg)
	return cmd
}

// Result reports how the run ended. It is only meaningful once Done is true.
func (m *Model) Result() Result {
	return m.result
}

// Done reports whether the model asked the program to quit.
func (m *Model) Done() bool {
	return m.done
}

// Menu exposes the hosted menu.
func (m *Model) Menu() contextmenu.Menu[menu.Item] {
	return m.menu
}

func (m *Model) finish(result Result) tea.Cmd {
	m.done = true
	m.result = result
	m.applyPopup(popup.HideMsg{})
	return tea.Quit
}
