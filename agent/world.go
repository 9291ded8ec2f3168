package agent

import (
	"sort"
	"sync"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/function"
)

// World is a named collection of agents sharing a provider and a
// registry. It routes messages between agents by name.
type World struct {
	mu       sync.RWMutex
	provider ai.CompletionProvider
	registry *function.Registry
	agents   map[string]*Agent
}

// NewWorld creates a world whose agents share the given provider and
// registry.
func NewWorld(provider ai.CompletionProvider, registry *function.Registry) *World {
	return &World{
		provider: provider,
		registry: registry,
		agents:   make(map[string]*Agent),
	}
}

// AddAgent creates an agent with the world's provider and registry and
// adds it under its name. An existing agent with the same name is
// replaced.
func (w *World) AddAgent(name, prompt string, opts ...Option) *Agent {
	a := New(name, prompt, w.provider, w.registry, opts...)
	w.Add(a)
	return a
}

// Add registers an existing agent under its name.
func (w *World) Add(a *Agent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.agents[a.Name()] = a
}

// Get returns the agent registered under name.
func (w *World) Get(name string) (*Agent, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.agents[name]
	return a, ok
}

// Deliver appends a message to the named agent's memory. It reports
// whether the agent exists.
func (w *World) Deliver(name string, msg ai.Message) bool {
	a, ok := w.Get(name)
	if !ok {
		return false
	}
	a.ReceiveMessage(msg)
	return true
}

// Names returns the names of all registered agents in sorted order.
func (w *World) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.agents))
	for name := range w.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered agents.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.agents)
}
