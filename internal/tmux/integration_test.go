package tmux

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-context-menu/internal/testutil"
)

func TestPaneRoundTripIntegration(t *testing.T) {
	socket, cleanup := testutil.StartTmuxServer(t)
	defer cleanup()
	pane := testutil.FirstPane(t, socket)

	if _, _, err := CursorPosition(socket, pane); err != nil {
		t.Skipf("skipping: cursor query failed (%v)", err)
	}

	if err := SendLiteral(socket, pane, "echo context-menu-marker"); err != nil {
		t.Fatalf("SendLiteral failed: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		lines, err := CapturePane(socket, pane, 50)
		if err != nil {
			t.Fatalf("CapturePane failed: %v", err)
		}
		if strings.Contains(strings.Join(lines, "\n"), "context-menu-marker") {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("typed text never appeared in the pane")
}
