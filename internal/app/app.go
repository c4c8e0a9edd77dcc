package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tmux-context-menu/internal/backend"
	"github.com/atomicstack/tmux-context-menu/internal/contextmenu"
	"github.com/atomicstack/tmux-context-menu/internal/logging"
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	"github.com/atomicstack/tmux-context-menu/internal/metric"
	"github.com/atomicstack/tmux-context-menu/internal/theme"
	"github.com/atomicstack/tmux-context-menu/internal/tmux"
	"github.com/atomicstack/tmux-context-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Exit codes reported by the command.
const (
	ExitSelected  = 0
	ExitError     = 1
	ExitConfig    = 2
	ExitCancelled = 130
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Pane         string
	ItemFiles    []string
	Stdin        bool
	PaneWords    bool
	MinWord      int
	CaptureLines int
	TmuxCommands bool
	Action       string
	Width        int
	Height       int
	ShowFooter   bool
	PollInterval time.Duration
	MetricsFile  string
	KeyOverrides map[string][]string
	Colors       theme.Colors
}

var (
	resolveSocketFn  = tmux.ResolveSocketPath
	currentPaneFn    = tmux.CurrentPane
	clientIDFn       = tmux.CurrentClientID
	cursorPositionFn = tmux.CursorPosition
	stdinReader      io.Reader = os.Stdin
	runProgramFn               = runProgram
)

// Run loads the candidates, shows the menu and returns how it ended.
func Run(ctx context.Context, cfg Config) (ui.Result, error) {
	started := time.Now()
	recorder := metric.NewRecorder()

	socketPath, err := resolveSocketFn(cfg.SocketPath)
	if err != nil {
		return ui.Result{}, fmt.Errorf("resolve socket path: %w", err)
	}
	pane, err := currentPaneFn(cfg.Pane)
	if err != nil && !errors.Is(err, tmux.ErrNoPane) {
		return ui.Result{}, err
	}
	mctx := menu.Context{SocketPath: socketPath, Pane: pane}
	if pane != "" {
		mctx.ClientID = clientIDFn(socketPath, pane)
	}

	sources := cfg.sources()
	items, err := menu.Load(mctx, sources)
	if err != nil {
		return ui.Result{}, fmt.Errorf("load items: %w", err)
	}
	events.App.Items(len(items), sources.Names())
	recorder.Items(len(items))

	action, err := menu.ActionFor(cfg.Action)
	if err != nil {
		return ui.Result{}, err
	}
	registry := ui.DefaultRegistry()
	if err := registry.Apply(cfg.KeyOverrides); err != nil {
		return ui.Result{}, fmt.Errorf("keys: %w", err)
	}

	modelCfg := ui.Config{
		Items:      items,
		Context:    mctx,
		ActionName: cfg.Action,
		Action:     action,
		Registry:   registry,
		Styles:     theme.Build(cfg.Colors),
		ShowFooter: cfg.ShowFooter,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}
	if pane != "" {
		if x, y, err := cursorPositionFn(socketPath, pane); err == nil {
			modelCfg.AnchorX, modelCfg.AnchorY = x, y
		} else {
			logging.Error(fmt.Errorf("initial cursor position: %w", err))
		}
		watcher := backend.NewWatcher(anchorSource(socketPath, pane), cfg.PollInterval)
		defer watcher.Stop()
		modelCfg.Watcher = watcher
	}

	model := ui.NewModel(modelCfg)
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	}
	if cfg.Stdin {
		opts = append(opts, tea.WithInputTTY())
	}
	final, err := runProgramFn(model, opts)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return ui.Result{}, err
	}
	result := resultOf(final)

	recorder.Outcome(result.Outcome.String())
	recorder.Duration(time.Since(started).Seconds())
	if cfg.MetricsFile != "" {
		if err := recorder.WriteToTextfile(cfg.MetricsFile); err != nil {
			logging.Error(fmt.Errorf("write metrics: %w", err))
		}
	}
	return result, nil
}

func (cfg Config) sources() menu.Sources {
	s := menu.Sources{
		Files:        cfg.ItemFiles,
		PaneWords:    cfg.PaneWords,
		MinWord:      cfg.MinWord,
		CaptureLines: cfg.CaptureLines,
		TmuxCommands: cfg.TmuxCommands,
	}
	if cfg.Stdin {
		s.Stdin = stdinReader
	}
	return s
}

// anchorSource polls the cursor of pane as the popup anchor.
func anchorSource(socketPath, pane string) backend.Source {
	return func(ctx context.Context) (backend.Anchor, error) {
		if err := ctx.Err(); err != nil {
			return backend.Anchor{}, err
		}
		x, y, err := cursorPositionFn(socketPath, pane)
		if err != nil {
			return backend.Anchor{}, err
		}
		return backend.Anchor{X: x, Y: y}, nil
	}
}

func runProgram(model *ui.Model, opts []tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(model, opts...).Run()
}

// resultOf reads the outcome from the final model. A program that stopped
// without the menu finishing counts as cancelled.
func resultOf(final tea.Model) ui.Result {
	m, ok := final.(*ui.Model)
	if !ok || m == nil || !m.Done() {
		return ui.Result{Outcome: contextmenu.OutcomeCancelled, Reason: string(events.CancelInterrupt)}
	}
	return m.Result()
}

// ExitCode maps a run's result to the process exit status.
func ExitCode(result ui.Result) int {
	if result.Outcome == contextmenu.OutcomeSelected {
		return ExitSelected
	}
	return ExitCancelled
}
