// Package ui contains the Bubble Tea program that hosts the context menu.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are first offered to the keybinding registry, evaluated
//     against the context keys the menu publishes. A matched command is handed
//     to contextmenu.Menu.Update and the returned outcome decides what happens
//     next: focus changes are traced, a selection runs the configured action
//     through the command bus, a cancellation quits.
//   - Keys the registry does not claim edit the filter query. Every edit
//     replaces the menu items with the matching subset and focuses the best
//     match.
//
// Backend interactions:
//   - A backend.Watcher streams anchor positions; Update waits for those
//     events and forwards them to the menu as popup.AnchorMsg. Terminal
//     resizes are forwarded as popup.ViewportMsg.
package ui
