package tmux

import (
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClient struct {
	displayMessageFn func(target, format string) (string, error)
	closed           int
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if f.displayMessageFn != nil {
		return f.displayMessageFn(target, format)
	}
	return "", nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

type stubCommander struct {
	output []byte
	err    error
	runs   int
}

func (s *stubCommander) Run() error {
	s.runs++
	return s.err
}

func (s *stubCommander) Output() ([]byte, error) {
	s.runs++
	return s.output, s.err
}

func withStubCommander(t *testing.T, fn func(name string, args ...string) commander) {
	t.Helper()
	prev := runExecCommand
	runExecCommand = fn
	t.Cleanup(func() { runExecCommand = prev })
}

func TestCursorPositionAddsPaneOffset(t *testing.T) {
	fake := &fakeClient{displayMessageFn: func(target, format string) (string, error) {
		if target != "%2" {
			t.Fatalf("unexpected target %q", target)
		}
		if format != cursorFormat {
			t.Fatalf("unexpected format %q", format)
		}
		return "40 10 3 4\n", nil
	}}
	var gotSocket string
	withStubTmux(t, func(socket string) (tmuxClient, error) {
		gotSocket = socket
		return fake, nil
	})

	x, y, err := CursorPosition("/tmp/sock", "%2")
	if err != nil {
		t.Fatalf("CursorPosition returned error: %v", err)
	}
	if x != 43 || y != 14 {
		t.Fatalf("expected (43,14), got (%d,%d)", x, y)
	}
	if gotSocket != "/tmp/sock" {
		t.Fatalf("expected socket to be passed through, got %q", gotSocket)
	}
	if fake.closed != 1 {
		t.Fatalf("expected client to be closed once, got %d", fake.closed)
	}
}

func TestCursorPositionUsesTmuxPane(t *testing.T) {
	t.Setenv("TMUX_PANE", "%9")
	var gotTarget string
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{displayMessageFn: func(target, _ string) (string, error) {
			gotTarget = target
			return "0 0 1 1", nil
		}}, nil
	})
	if _, _, err := CursorPosition("", ""); err != nil {
		t.Fatalf("CursorPosition returned error: %v", err)
	}
	if gotTarget != "%9" {
		t.Fatalf("expected $TMUX_PANE target, got %q", gotTarget)
	}
}

func TestCursorPositionWithoutPane(t *testing.T) {
	t.Setenv("TMUX_PANE", "")
	withStubTmux(t, func(string) (tmuxClient, error) {
		t.Fatal("client should not be created without a pane")
		return nil, nil
	})
	if _, _, err := CursorPosition("", ""); !errors.Is(err, ErrNoPane) {
		t.Fatalf("expected ErrNoPane, got %v", err)
	}
}

func TestCursorPositionPropagatesErrors(t *testing.T) {
	boom := errors.New("no server")
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, boom })
	if _, _, err := CursorPosition("", "%1"); !errors.Is(err, boom) {
		t.Fatalf("expected connect error, got %v", err)
	}

	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{displayMessageFn: func(string, string) (string, error) {
			return "", boom
		}}, nil
	})
	if _, _, err := CursorPosition("", "%1"); !errors.Is(err, boom) {
		t.Fatalf("expected display-message error, got %v", err)
	}
}

func TestParseCursorRejectsMalformedOutput(t *testing.T) {
	for _, out := range []string{"", "1 2 3", "1 2 x 4", "1 2 3 4 5"} {
		if _, _, err := parseCursor(out); err == nil {
			t.Errorf("expected error for %q", out)
		}
	}
}

func TestCurrentClientID(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{displayMessageFn: func(_, format string) (string, error) {
			if format != "#{client_name}" {
				t.Fatalf("unexpected format %q", format)
			}
			return "/dev/pts/3\n", nil
		}}, nil
	})
	if got := CurrentClientID("", "%1"); got != "/dev/pts/3" {
		t.Fatalf("expected client name, got %q", got)
	}
}

func TestCapturePaneArgs(t *testing.T) {
	var gotArgs []string
	withStubCommander(t, func(name string, args ...string) commander {
		if name != "tmux" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args
		return &stubCommander{output: []byte("one  \r\ntwo\n\nthree\n\n")}
	})
	lines, err := CapturePane("/tmp/sock", "%3", 0)
	if err != nil {
		t.Fatalf("CapturePane returned error: %v", err)
	}
	want := []string{"one", "two", "", "three"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %#v, got %#v", want, lines)
	}
	joined := strings.Join(gotArgs, " ")
	for _, part := range []string{"-S /tmp/sock", "capture-pane -p -J", fmt.Sprintf("-S -%d", DefaultCaptureLines), "-t %3"} {
		if !strings.Contains(joined, part) {
			t.Errorf("expected %q in args %q", part, joined)
		}
	}
}

func TestCapturePaneError(t *testing.T) {
	boom := errors.New("exit status 1")
	withStubCommander(t, func(string, ...string) commander {
		return &stubCommander{err: boom}
	})
	if _, err := CapturePane("", "%3", 10); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSendLiteral(t *testing.T) {
	var gotArgs []string
	stub := &stubCommander{}
	withStubCommander(t, func(_ string, args ...string) commander {
		gotArgs = args
		return stub
	})
	if err := SendLiteral("", "%5", "-rf /"); err != nil {
		t.Fatalf("SendLiteral returned error: %v", err)
	}
	want := []string{"send-keys", "-t", "%5", "-l", "--", "-rf /"}
	if strings.Join(gotArgs, "|") != strings.Join(want, "|") {
		t.Fatalf("expected args %#v, got %#v", want, gotArgs)
	}

	stub.runs = 0
	if err := SendLiteral("", "%5", ""); err != nil {
		t.Fatalf("empty text should be a no-op, got %v", err)
	}
	if stub.runs != 0 {
		t.Fatalf("expected no command for empty text")
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Setenv(SocketEnv, "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/var/tmp")

	if got, _ := ResolveSocketPath("/explicit"); got != "/explicit" {
		t.Fatalf("flag value should win, got %q", got)
	}

	t.Setenv("TMUX", "/tmp/tmux-1000/work,123,0")
	if got, _ := ResolveSocketPath(""); got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from $TMUX, got %q", got)
	}

	t.Setenv(SocketEnv, "/from/env")
	if got, _ := ResolveSocketPath(""); got != "/from/env" {
		t.Fatalf("expected env socket, got %q", got)
	}

	t.Setenv(SocketEnv, "")
	t.Setenv("TMUX", "")
	u, err := user.Current()
	if err != nil {
		t.Skipf("skipping: no current user: %v", err)
	}
	want := filepath.Join("/var/tmp", "tmux-"+u.Uid, "default")
	if got, _ := ResolveSocketPath(""); got != want {
		t.Fatalf("expected default socket %q, got %q", want, got)
	}
}
