// Package keybinding matches key presses against a declarative table of
// command bindings. Each binding is gated by a condition over named boolean
// context keys that components publish (for example "contextMenuVisible").
package keybinding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Context is the set of named conditions currently true or false.
type Context map[string]bool

// Merge returns a new context holding the keys of c overlaid with other.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Holds evaluates a when-clause. Clauses are context keys joined with "&&";
// a leading "!" negates a key. Missing keys are false and an empty clause
// always holds.
func (c Context) Holds(when string) bool {
	when = strings.TrimSpace(when)
	if when == "" {
		return true
	}
	for _, term := range strings.Split(when, "&&") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		negate := strings.HasPrefix(term, "!")
		name := strings.TrimSpace(strings.TrimPrefix(term, "!"))
		if c[name] == negate {
			return false
		}
	}
	return true
}

// Binding attaches keys to a command identifier.
type Binding struct {
	Command string
	Keys    []string
	Help    string
	When    string
}

func (b Binding) keyBinding() key.Binding {
	help := ""
	if len(b.Keys) > 0 {
		help = b.Keys[0]
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(help, b.Help))
}

// Registry holds bindings in registration order.
type Registry struct {
	bindings []*Binding
	index    map[string]*Binding
}

// NewRegistry builds a registry from the supplied table.
func NewRegistry(bindings ...Binding) *Registry {
	r := &Registry{index: make(map[string]*Binding)}
	for _, b := range bindings {
		r.Register(b)
	}
	return r
}

// Register adds a binding. A later registration for the same command
// replaces the earlier one in place.
func (r *Registry) Register(b Binding) {
	b.Keys = append([]string(nil), b.Keys...)
	if existing, ok := r.index[b.Command]; ok {
		*existing = b
		return
	}
	entry := &b
	r.bindings = append(r.bindings, entry)
	r.index[b.Command] = entry
}

// Override replaces the keys of a registered command.
func (r *Registry) Override(command string, keys []string) error {
	entry, ok := r.index[command]
	if !ok {
		return fmt.Errorf("unknown command %q", command)
	}
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("command %q: no keys given", command)
	}
	entry.Keys = cleaned
	return nil
}

// Apply runs Override for every entry, stopping at the first failure.
// Commands are applied in sorted order so errors are deterministic.
func (r *Registry) Apply(overrides map[string][]string) error {
	commands := make([]string, 0, len(overrides))
	for command := range overrides {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	for _, command := range commands {
		if err := r.Override(command, overrides[command]); err != nil {
			return err
		}
	}
	return nil
}

// Match returns the first command whose condition holds in ctx and whose
// keys match msg.
func (r *Registry) Match(msg tea.KeyMsg, ctx Context) (string, bool) {
	for _, b := range r.bindings {
		if !ctx.Holds(b.When) {
			continue
		}
		if key.Matches(msg, b.keyBinding()) {
			return b.Command, true
		}
	}
	return "", false
}

// Help lists the bindings active in ctx, for rendering with bubbles/help.
func (r *Registry) Help(ctx Context) []key.Binding {
	out := make([]key.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if ctx.Holds(b.When) {
			out = append(out, b.keyBinding())
		}
	}
	return out
}

// Bindings returns a copy of the table.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		dup := *b
		dup.Keys = append([]string(nil), b.Keys...)
		out = append(out, dup)
	}
	return out
}
