package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-context-menu/internal/app"
	"github.com/atomicstack/tmux-context-menu/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Action:     "insert",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File: "/etc/menu.toml",
		Flags: map[string]string{
			"socket": "socket-path",
			"width":  "80",
			"height": "24",
			"footer": "true",
			"action": "insert",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["action"] != "insert" {
		t.Fatalf("expected action insert, got %v", flagsValue["action"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/menu.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App.SocketPath != cfg.App.SocketPath || cfgValue.App.Action != cfg.App.Action {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func testEnviron(t *testing.T, extra ...string) []string {
	t.Helper()
	return append([]string{"HOME=" + t.TempDir()}, extra...)
}

func TestRunKeysPrintsBindingTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"keys"}, testEnviron(t), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"COMMAND", "contextMenu.acceptSelected", "popup.cancel", "contextMenuVisible"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in keys output:\n%s", want, out)
		}
	}
}

func TestRunKeysAppliesConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[keys]\n\"contextMenu.selectNext\" = [\"ctrl+j\"]\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"keys", "--config", path}, testEnviron(t), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	for _, line := range strings.Split(stdout.String(), "\n") {
		if strings.HasPrefix(line, "contextMenu.selectNext ") {
			if !strings.Contains(line, "ctrl+j") || strings.Contains(line, "down") {
				t.Fatalf("expected override in %q", line)
			}
			return
		}
	}
	t.Fatalf("selectNext row missing:\n%s", stdout.String())
}

func TestRunWithoutSourcesIsConfigError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, testEnviron(t), &stdout, &stderr)
	if code != app.ExitConfig {
		t.Fatalf("expected exit %d, got %d", app.ExitConfig, code)
	}
	if !strings.Contains(stderr.String(), "Configuration error") || !strings.Contains(stderr.String(), "no item source") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--bogus"}, testEnviron(t), &stdout, &stderr)
	if code != app.ExitConfig {
		t.Fatalf("expected exit %d, got %d", app.ExitConfig, code)
	}
}

func TestRunHelpPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--help"}, testEnviron(t), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "--pane-words") {
		t.Fatalf("expected flag usage, got %q", stdout.String())
	}
}
