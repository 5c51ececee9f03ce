package commands

import (
	"fmt"
	"sort"
	"sync"

	"tasktrack/internal/navigate"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Register adds c under its name and aliases.
//
// A command whose default route is gated must talk to the API, since the
// gate needs a session, and the route must be one navigate knows about.
func (r *Registry) Register(c Command) error {
	if err := checkRoute(c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, k := range keys {
		if prev, exists := r.cmds[k]; exists {
			return fmt.Errorf("command %s: name %q already taken by %s", c.Name(), k, prev.Name())
		}
	}
	for _, k := range keys {
		r.cmds[k] = c
	}
	return nil
}

func checkRoute(c Command) error {
	route := c.Route()
	if route == "" {
		return nil
	}
	if !c.NeedsService() {
		return fmt.Errorf("command %s: route %s needs a session but the command has no service", c.Name(), route)
	}
	if _, ok := navigate.RouteRoles(route); !ok {
		return fmt.Errorf("command %s: unknown route %s", c.Name(), route)
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := make(map[string]Command, len(r.cmds))
	for _, cmd := range r.cmds {
		byName[cmd.Name()] = cmd
	}
	out := make([]Command, 0, len(byName))
	for _, cmd := range byName {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// DefaultRegistry holds the commands registered from init.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a conflict.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
