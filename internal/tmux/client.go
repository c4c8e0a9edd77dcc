package tmux

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrNoPane is returned when no pane target is given and none can be taken
// from the environment.
var ErrNoPane = errors.New("tmux pane target required")

// cursorFormat yields the pane origin and the cursor inside the pane so the
// result can be turned into client coordinates.
const cursorFormat = "#{pane_left} #{pane_top} #{cursor_x} #{cursor_y}"

type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// CurrentPane returns pane when set, falling back to $TMUX_PANE.
func CurrentPane(pane string) (string, error) {
	if target := strings.TrimSpace(pane); target != "" {
		return target, nil
	}
	if target := strings.TrimSpace(os.Getenv("TMUX_PANE")); target != "" {
		return target, nil
	}
	return "", ErrNoPane
}

// CursorPosition reports the cursor of pane in client cell coordinates, that
// is the pane offset plus the cursor offset inside the pane.
func CursorPosition(socketPath, pane string) (int, int, error) {
	target, err := CurrentPane(pane)
	if err != nil {
		return 0, 0, err
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return 0, 0, err
	}
	defer client.Close()
	out, err := client.DisplayMessage(target, cursorFormat)
	if err != nil {
		return 0, 0, fmt.Errorf("display-message %s: %w", target, err)
	}
	return parseCursor(out)
}

func parseCursor(out string) (int, int, error) {
	fields := strings.Fields(out)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("unexpected cursor output %q", strings.TrimSpace(out))
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, fmt.Errorf("parse cursor field %q: %w", f, err)
		}
		values[i] = v
	}
	return values[0] + values[2], values[1] + values[3], nil
}

// CurrentClientID detects the client attached to pane so that actions
// target the visible tmux client instead of the control-mode connection.
func CurrentClientID(socketPath, pane string) string {
	target, err := CurrentPane(pane)
	if err != nil {
		return ""
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
