package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-context-menu/internal/app"
	"github.com/atomicstack/tmux-context-menu/internal/backend"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	"github.com/atomicstack/tmux-context-menu/internal/theme"
	"github.com/atomicstack/tmux-context-menu/internal/tmux"
	"github.com/atomicstack/tmux-context-menu/internal/ui"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was read, empty when none was found.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix       = "TMUX_CONTEXT_MENU_"
	envConfig       = envPrefix + "CONFIG"
	envSocketPath   = envPrefix + "SOCKET"
	envPane         = envPrefix + "PANE"
	envItems        = envPrefix + "ITEMS"
	envStdin        = envPrefix + "STDIN"
	envPaneWords    = envPrefix + "PANE_WORDS"
	envMinWord      = envPrefix + "MIN_WORD"
	envCaptureLines = envPrefix + "CAPTURE_LINES"
	envTmuxCommands = envPrefix + "TMUX_COMMANDS"
	envAction       = envPrefix + "ACTION"
	envWidth        = envPrefix + "WIDTH"
	envHeight       = envPrefix + "HEIGHT"
	envPoll         = envPrefix + "POLL_INTERVAL"
	envShowFooter   = envPrefix + "FOOTER"
	envTrace        = envPrefix + "TRACE"
	envLogFile      = envPrefix + "LOG_FILE"
	envMetricsFile  = envPrefix + "METRICS_FILE"
)

// settings is the flat set of options shared by the file, the environment
// and the flags. Later layers overwrite earlier ones.
type settings struct {
	Socket       string              `toml:"socket"`
	Pane         string              `toml:"pane"`
	Items        []string            `toml:"items"`
	Stdin        bool                `toml:"stdin"`
	PaneWords    bool                `toml:"pane_words"`
	MinWord      int                 `toml:"min_word"`
	CaptureLines int                 `toml:"capture_lines"`
	TmuxCommands bool                `toml:"tmux_commands"`
	Action       string              `toml:"action"`
	Width        int                 `toml:"width"`
	Height       int                 `toml:"height"`
	PollInterval string              `toml:"poll_interval"`
	Footer       bool                `toml:"footer"`
	Trace        bool                `toml:"trace"`
	LogFile      string              `toml:"log_file"`
	MetricsFile  string              `toml:"metrics_file"`
	Keys         map[string][]string `toml:"keys"`
	Theme        theme.Colors        `toml:"theme"`
}

func defaults() settings {
	return settings{
		MinWord:      menu.DefaultMinWordLength,
		CaptureLines: tmux.DefaultCaptureLines,
		Action:       menu.ActionPrint,
		PollInterval: backend.DefaultInterval.String(),
	}
}

// Load parses configuration from CLI arguments, environment variables and
// the config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs, values := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	s := defaults()
	path, explicit := configPath(fs, values, env)
	found, err := loadFile(path, explicit, &s)
	if err != nil {
		return Config{}, err
	}
	applyEnv(env, &s)
	applyFlags(fs, values, &s)
	s.Items = append(s.Items, fs.Args()...)

	poll, err := time.ParseDuration(s.PollInterval)
	if err != nil {
		return Config{}, fmt.Errorf("poll interval %q: %w", s.PollInterval, err)
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   s.Socket,
			Pane:         s.Pane,
			ItemFiles:    s.Items,
			Stdin:        s.Stdin,
			PaneWords:    s.PaneWords,
			MinWord:      s.MinWord,
			CaptureLines: s.CaptureLines,
			TmuxCommands: s.TmuxCommands,
			Action:       s.Action,
			Width:        s.Width,
			Height:       s.Height,
			ShowFooter:   s.Footer,
			PollInterval: poll,
			MetricsFile:  s.MetricsFile,
			KeyOverrides: s.Keys,
			Colors:       s.Theme,
		},
		Logging: Logging{
			FilePath: s.LogFile,
			Trace:    s.Trace,
		},
		Flags: map[string]string{
			"socket":        s.Socket,
			"pane":          s.Pane,
			"items":         strings.Join(s.Items, ","),
			"stdin":         strconv.FormatBool(s.Stdin),
			"pane-words":    strconv.FormatBool(s.PaneWords),
			"min-word":      strconv.Itoa(s.MinWord),
			"capture-lines": strconv.Itoa(s.CaptureLines),
			"tmux-commands": strconv.FormatBool(s.TmuxCommands),
			"action":        s.Action,
			"width":         strconv.Itoa(s.Width),
			"height":        strconv.Itoa(s.Height),
			"poll-interval": poll.String(),
			"footer":        strconv.FormatBool(s.Footer),
			"trace":         strconv.FormatBool(s.Trace),
			"logFile":       s.LogFile,
			"metricsFile":   s.MetricsFile,
		},
		Args: append([]string(nil), args...),
	}
	if found {
		cfg.File = path
	}
	return cfg, nil
}

type flagValues struct {
	config       *string
	socket       *string
	pane         *string
	items        *[]string
	stdin        *bool
	paneWords    *bool
	minWord      *int
	captureLines *int
	tmuxCommands *bool
	action       *string
	width        *int
	height       *int
	poll         *string
	footer       *bool
	trace        *bool
	logFile      *string
	metricsFile  *string
}

func newFlagSet() (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("tmux-context-menu", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	d := defaults()
	v := flagValues{
		config:       fs.StringP("config", "c", "", "path to the TOML config file"),
		socket:       fs.String("socket", "", "path to the tmux socket (overrides environment detection)"),
		pane:         fs.String("pane", "", "target pane id (defaults to $TMUX_PANE)"),
		items:        fs.StringSliceP("items", "i", nil, "file of candidates, one per line, id<TAB>label<TAB>detail (repeatable)"),
		stdin:        fs.Bool("stdin", false, "read candidates from standard input"),
		paneWords:    fs.BoolP("pane-words", "w", false, "offer the words visible in the pane"),
		minWord:      fs.Int("min-word", d.MinWord, "shortest pane word offered"),
		captureLines: fs.Int("capture-lines", d.CaptureLines, "scrollback lines captured for pane words"),
		tmuxCommands: fs.Bool("tmux-commands", false, "offer the tmux command list"),
		action:       fs.StringP("action", "a", d.Action, "what to do with the chosen item ("+strings.Join(menu.ActionNames(), "|")+")"),
		width:        fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)"),
		height:       fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)"),
		poll:         fs.String("poll-interval", d.PollInterval, "how often the cursor position is polled"),
		footer:       fs.Bool("footer", false, "enable footer key help (disabled by default)"),
		trace:        fs.Bool("trace", false, "enable verbose JSON trace logging"),
		logFile:      fs.String("log-file", "", "path to the log file"),
		metricsFile:  fs.String("metrics-file", "", "write outcome metrics in Prometheus text format to this file"),
	}
	return fs, v
}

// Usage describes the accepted flags.
func Usage() string {
	fs, _ := newFlagSet()
	return fs.FlagUsages()
}

func configPath(fs *pflag.FlagSet, v flagValues, env map[string]string) (string, bool) {
	if fs.Changed("config") {
		return *v.config, true
	}
	if p, ok := env[envConfig]; ok && p != "" {
		return p, true
	}
	return DefaultConfigPath(env), false
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tmux-context-menu/config.toml,
// falling back to ~/.config.
func DefaultConfigPath(env map[string]string) string {
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			if h, err := os.UserHomeDir(); err == nil {
				home = h
			}
		}
		if home == "" {
			return "config.toml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tmux-context-menu", "config.toml")
}

// loadFile overlays the TOML file onto s. A missing file is only an error
// when it was named explicitly.
func loadFile(path string, explicit bool, s *settings) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return false, nil
		}
		return false, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return false, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return true, nil
}

func applyEnv(env map[string]string, s *settings) {
	s.Socket = envOrDefault(env, envSocketPath, s.Socket)
	s.Pane = envOrDefault(env, envPane, s.Pane)
	if v, ok := env[envItems]; ok && strings.TrimSpace(v) != "" {
		s.Items = splitList(v)
	}
	s.Stdin = envOrBool(env, envStdin, s.Stdin)
	s.PaneWords = envOrBool(env, envPaneWords, s.PaneWords)
	s.MinWord = envOrInt(env, envMinWord, s.MinWord)
	s.CaptureLines = envOrInt(env, envCaptureLines, s.CaptureLines)
	s.TmuxCommands = envOrBool(env, envTmuxCommands, s.TmuxCommands)
	s.Action = envOrDefault(env, envAction, s.Action)
	s.Width = envOrInt(env, envWidth, s.Width)
	s.Height = envOrInt(env, envHeight, s.Height)
	s.PollInterval = envOrDefault(env, envPoll, s.PollInterval)
	s.Footer = envOrBool(env, envShowFooter, s.Footer)
	s.Trace = envOrBool(env, envTrace, s.Trace)
	s.LogFile = envOrDefault(env, envLogFile, s.LogFile)
	s.MetricsFile = envOrDefault(env, envMetricsFile, s.MetricsFile)
}

// applyFlags copies only the flags given on the command line so that
// unset flags do not mask the file and environment.
func applyFlags(fs *pflag.FlagSet, v flagValues, s *settings) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "socket":
			s.Socket = *v.socket
		case "pane":
			s.Pane = *v.pane
		case "items":
			s.Items = append([]string(nil), *v.items...)
		case "stdin":
			s.Stdin = *v.stdin
		case "pane-words":
			s.PaneWords = *v.paneWords
		case "min-word":
			s.MinWord = *v.minWord
		case "capture-lines":
			s.CaptureLines = *v.captureLines
		case "tmux-commands":
			s.TmuxCommands = *v.tmuxCommands
		case "action":
			s.Action = *v.action
		case "width":
			s.Width = *v.width
		case "height":
			s.Height = *v.height
		case "poll-interval":
			s.PollInterval = *v.poll
		case "footer":
			s.Footer = *v.footer
		case "trace":
			s.Trace = *v.trace
		case "log-file":
			s.LogFile = *v.logFile
		case "metrics-file":
			s.MetricsFile = *v.metricsFile
		}
	})
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures the configuration can be run.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.MinWord < 1 {
		return fmt.Errorf("min-word must be >= 1 (got %d)", a.MinWord)
	}
	if a.CaptureLines < 1 {
		return fmt.Errorf("capture-lines must be >= 1 (got %d)", a.CaptureLines)
	}
	if a.PollInterval < 0 {
		return fmt.Errorf("poll interval must be >= 0 (got %s)", a.PollInterval)
	}
	if _, err := menu.ActionFor(a.Action); err != nil {
		return err
	}
	if len(a.ItemFiles) == 0 && !a.Stdin && !a.PaneWords && !a.TmuxCommands {
		return errors.New("no item source: pass item files, --stdin, --pane-words or --tmux-commands")
	}
	if err := ui.DefaultRegistry().Apply(a.KeyOverrides); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}
