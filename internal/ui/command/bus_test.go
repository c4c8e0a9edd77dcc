package command

import (
	"errors"
	"testing"

	"github.com/atomicstack/tmux-context-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func run(t *testing.T, cmd tea.Cmd) DoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	done, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg")
	}
	return done
}

func TestExecuteRunsHandler(t *testing.T) {
	var gotCtx menu.Context
	var gotItem menu.Item
	handler := func(ctx menu.Context, item menu.Item) tea.Cmd {
		gotCtx, gotItem = ctx, item
		return func() tea.Msg { return menu.ActionResult{Info: "ok"} }
	}
	ctx := menu.Context{Pane: "%1"}
	item := menu.Item{ID: "value"}
	done := run(t, New().Execute(ctx, Request{ID: "insert", Handler: handler, Item: item}))
	if done.Result.Info != "ok" || done.Result.Err != nil {
		t.Fatalf("unexpected result %#v", done.Result)
	}
	if gotCtx != ctx || gotItem != item {
		t.Fatalf("handler saw ctx=%#v item=%#v", gotCtx, gotItem)
	}
	if done.Request.ID != "insert" {
		t.Fatalf("expected request echoed back, got %#v", done.Request)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	done := run(t, New().Execute(menu.Context{}, Request{ID: "missing"}))
	if done.Result.Err == nil {
		t.Fatal("expected error for missing handler")
	}
}

func TestExecuteNilCommandIsSuccess(t *testing.T) {
	handler := func(menu.Context, menu.Item) tea.Cmd { return nil }
	done := run(t, New().Execute(menu.Context{}, Request{ID: "noop", Handler: handler}))
	if done.Result.Err != nil {
		t.Fatalf("expected success, got %v", done.Result.Err)
	}
}

func TestExecuteUnexpectedMessage(t *testing.T) {
	handler := func(menu.Context, menu.Item) tea.Cmd {
		return func() tea.Msg { return "surprise" }
	}
	done := run(t, New().Execute(menu.Context{}, Request{ID: "odd", Handler: handler}))
	if done.Result.Err == nil {
		t.Fatal("expected error for unexpected message type")
	}

	boom := errors.New("boom")
	handler = func(menu.Context, menu.Item) tea.Cmd {
		return func() tea.Msg { return menu.ActionResult{Err: boom} }
	}
	done = run(t, New().Execute(menu.Context{}, Request{ID: "fail", Handler: handler}))
	if !errors.Is(done.Result.Err, boom) {
		t.Fatalf("expected handler error, got %v", done.Result.Err)
	}
}
