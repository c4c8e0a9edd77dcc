package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atomicstack/tmux-context-menu/internal/app"
	"github.com/atomicstack/tmux-context-menu/internal/config"
	"github.com/atomicstack/tmux-context-menu/internal/format/table"
	"github.com/atomicstack/tmux-context-menu/internal/logging"
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var errorColor = color.New(color.FgRed, color.Bold)

// exitError carries the process status alongside the failure.
type exitError struct {
	code   int
	prefix string
	err    error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	code := run(ctx, os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args, environ []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	code := app.ExitSelected
	root := newRootCmd(environ, &code)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr *exitError
		if !errors.As(err, &exitErr) {
			exitErr = &exitError{code: app.ExitError, prefix: "Error", err: err}
		}
		errorColor.Fprintf(stderr, "%s: ", exitErr.prefix)
		fmt.Fprintln(stderr, exitErr.err)
		return exitErr.code
	}
	return code
}

func newRootCmd(environ []string, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "tmux-context-menu [flags] [item-file...]",
		Short: "Pick an item from a popup menu anchored at the tmux cursor",
		Long: `tmux-context-menu opens a small menu next to the cursor of the current
pane. Candidates come from item files, standard input, the words visible in
the pane or the tmux command list. The chosen item is printed, typed into the
pane or copied to the clipboard.

Flags may also be set in ~/.config/tmux-context-menu/config.toml or through
TMUX_CONTEXT_MENU_* environment variables.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := runMenu(cmd.Context(), args, environ, cmd.OutOrStdout())
			*code = c
			return err
		},
	}
	root.AddCommand(newKeysCmd(environ))
	return root
}

func newKeysCmd(environ []string) *cobra.Command {
	return &cobra.Command{
		Use:                "keys [flags]",
		Short:              "Print the key bindings, including config overrides",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadArgs(args, environ)
			if err != nil {
				return &exitError{code: app.ExitConfig, prefix: "Configuration error", err: err}
			}
			registry := ui.DefaultRegistry()
			if err := registry.Apply(cfg.App.KeyOverrides); err != nil {
				return &exitError{code: app.ExitConfig, prefix: "Configuration error", err: err}
			}
			rows := [][]string{{"COMMAND", "KEYS", "WHEN", "HELP"}}
			for _, b := range registry.Bindings() {
				rows = append(rows, []string{b.Command, strings.Join(b.Keys, ","), b.When, b.Help})
			}
			for _, line := range table.Format(rows, nil) {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

func runMenu(ctx context.Context, args, environ []string, stdout io.Writer) (int, error) {
	runtimeCfg, err := config.LoadArgs(args, environ)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintf(stdout, "Usage: tmux-context-menu [flags] [item-file...]\n\n%s", config.Usage())
		return app.ExitSelected, nil
	}
	if err != nil {
		return app.ExitConfig, &exitError{code: app.ExitConfig, prefix: "Configuration error", err: err}
	}
	if err := config.Validate(runtimeCfg); err != nil {
		return app.ExitConfig, &exitError{code: app.ExitConfig, prefix: "Configuration error", err: err}
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	result, err := app.Run(ctx, runtimeCfg.App)
	if err != nil {
		logging.Error(err)
		return app.ExitError, &exitError{code: app.ExitError, prefix: "Error", err: err}
	}
	if result.Output != "" {
		fmt.Fprintln(stdout, result.Output)
	}
	code := app.ExitCode(result)
	events.App.Exit(result.Outcome.String(), code)
	return code, nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions. The menu draws on stderr, so stderr is the one that matters
// when stdout is piped.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
