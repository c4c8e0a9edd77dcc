package menu

import (
	"errors"
	"testing"
)

func TestActionForResolvesNames(t *testing.T) {
	for _, name := range []string{ActionPrint, ActionInsert, ActionClipboard} {
		if _, err := ActionFor(name); err != nil {
			t.Fatalf("expected %q to resolve, got %v", name, err)
		}
	}
	if _, err := ActionFor("explode"); err == nil {
		t.Fatalf("expected unknown action error")
	}
}

func TestPrintActionReturnsOutput(t *testing.T) {
	msg := PrintAction(Context{}, Item{ID: "value", Label: "label"})()
	res, ok := msg.(ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult, got %T", msg)
	}
	if res.Output != "value" || res.Err != nil {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestInsertActionSendsLiteral(t *testing.T) {
	restore := sendLiteralFn
	t.Cleanup(func() { sendLiteralFn = restore })

	var gotSocket, gotPane, gotText string
	sendLiteralFn = func(socket, pane, text string) error {
		gotSocket, gotPane, gotText = socket, pane, text
		return nil
	}
	res := InsertAction(Context{SocketPath: "/s", Pane: "%1"}, Item{ID: "word"})().(ActionResult)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if gotSocket != "/s" || gotPane != "%1" || gotText != "word" {
		t.Fatalf("unexpected send-keys args %q %q %q", gotSocket, gotPane, gotText)
	}
	if res.Info != "Inserted word" {
		t.Fatalf("unexpected info %q", res.Info)
	}

	boom := errors.New("pane gone")
	sendLiteralFn = func(string, string, string) error { return boom }
	res = InsertAction(Context{}, Item{ID: "word"})().(ActionResult)
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected send error, got %v", res.Err)
	}
}

func TestClipboardActionWritesValue(t *testing.T) {
	restore := writeClipboardFn
	t.Cleanup(func() { writeClipboardFn = restore })

	var got string
	writeClipboardFn = func(text string) error {
		got = text
		return nil
	}
	res := ClipboardAction(Context{}, Item{ID: "copy me"})().(ActionResult)
	if res.Err != nil || got != "copy me" {
		t.Fatalf("unexpected result %#v (clipboard=%q)", res, got)
	}

	res = ClipboardAction(Context{}, Item{})().(ActionResult)
	if res.Err == nil {
		t.Fatalf("expected error for empty value")
	}
}
