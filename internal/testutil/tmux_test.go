package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup := StartTmuxServer(t)
	defer cleanup()
	if err := TmuxCommand(socket, "list-sessions").Run(); err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
	if pane := FirstPane(t, socket); pane == "" {
		t.Fatal("expected a pane id")
	}
}
