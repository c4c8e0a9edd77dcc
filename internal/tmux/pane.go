package tmux

import (
	"fmt"
	"strings"
)

// DefaultCaptureLines is how much scrollback CapturePane reads when no line
// count is given.
const DefaultCaptureLines = 200

// CapturePane returns the visible contents of pane plus up to lines of
// scrollback, with wrapped lines joined and escape sequences dropped.
func CapturePane(socketPath, pane string, lines int) ([]string, error) {
	target, err := CurrentPane(pane)
	if err != nil {
		return nil, err
	}
	if lines <= 0 {
		lines = DefaultCaptureLines
	}
	args := append(baseArgs(socketPath), "capture-pane", "-p", "-J", "-S", fmt.Sprintf("-%d", lines), "-t", target)
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("capture-pane %s: %w", target, err)
	}
	return splitLines(string(output)), nil
}

// SendLiteral types text into pane without interpreting key names.
func SendLiteral(socketPath, pane, text string) error {
	target, err := CurrentPane(pane)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	args := append(baseArgs(socketPath), "send-keys", "-t", target, "-l", "--", text)
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("send-keys %s: %w", target, err)
	}
	return nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	normalised := strings.ReplaceAll(text, "\r\n", "\n")
	normalised = strings.ReplaceAll(normalised, "\r", "\n")
	normalised = strings.TrimRight(normalised, "\n")
	if normalised == "" {
		return nil
	}
	raw := strings.Split(normalised, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return lines
}

// ListCommands returns the output of tmux list-commands, one command with
// its usage per line.
func ListCommands(socketPath string) ([]string, error) {
	args := append(baseArgs(socketPath), "list-commands")
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-commands failed: %w", err)
	}
	return splitLines(strings.TrimSpace(string(output))), nil
}
