// Package memory holds an agent's conversation history: an append-only,
// mutex-guarded message sequence. History lives for the lifetime of the
// owning agent; persistence across process restarts is out of scope.
package memory

import (
	"sync"

	ai "github.com/GPTPlayers/gpt-players"
)

// Memory manages an ordered conversation history.
type Memory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{
		messages: make([]ai.Message, 0),
	}
}

// NewFrom creates a Memory initialized with existing messages.
func NewFrom(messages []ai.Message) *Memory {
	m := New()
	if len(messages) > 0 {
		m.messages = make([]ai.Message, len(messages))
		copy(m.messages, messages)
	}
	return m
}

// Messages returns a copy of all messages in causal order.
func (m *Memory) Messages() []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ai.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// Append adds messages to the history.
func (m *Memory) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msgs...)
}

// Len returns the number of messages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Last returns the last n messages. If n exceeds Len, all messages are
// returned.
func (m *Memory) Last(n int) []ai.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 {
		return nil
	}

	start := len(m.messages) - n
	if start < 0 {
		start = 0
	}

	result := make([]ai.Message, len(m.messages)-start)
	copy(result, m.messages[start:])
	return result
}

// Clear removes all messages.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]ai.Message, 0)
}

// Clone creates a deep copy of the Memory.
func (m *Memory) Clone() *Memory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return NewFrom(m.messages)
}
