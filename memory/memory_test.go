package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/GPTPlayers/gpt-players"
)

func TestMemoryAppendAndMessages(t *testing.T) {
	m := New()
	assert.Equal(t, 0, m.Len())

	m.Append(ai.NewSystemMessage("prompt"))
	m.Append(ai.NewUserMessage("one"), ai.NewUserMessage("two"))

	assert.Equal(t, 3, m.Len())
	msgs := m.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, "one", msgs[1].Content)
	assert.Equal(t, "two", msgs[2].Content)
}

func TestMessagesReturnsCopy(t *testing.T) {
	m := New()
	m.Append(ai.NewUserMessage("original"))

	msgs := m.Messages()
	msgs[0].Content = "mutated"

	assert.Equal(t, "original", m.Messages()[0].Content)
}

func TestLast(t *testing.T) {
	m := New()
	for i := 1; i <= 5; i++ {
		m.Append(ai.NewUserMessage(fmt.Sprintf("msg-%d", i)))
	}

	last := m.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "msg-4", last[0].Content)
	assert.Equal(t, "msg-5", last[1].Content)

	assert.Len(t, m.Last(10), 5)
	assert.Nil(t, m.Last(0))
	assert.Nil(t, m.Last(-1))
}

func TestClear(t *testing.T) {
	m := NewFrom([]ai.Message{ai.NewUserMessage("a"), ai.NewUserMessage("b")})
	require.Equal(t, 2, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Messages())
}

func TestClone(t *testing.T) {
	m := NewFrom([]ai.Message{ai.NewUserMessage("shared")})
	clone := m.Clone()

	clone.Append(ai.NewUserMessage("clone only"))
	m.Append(ai.NewUserMessage("original only"))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, "original only", m.Messages()[1].Content)
	assert.Equal(t, "clone only", clone.Messages()[1].Content)
}

func TestConcurrentAppend(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Append(ai.NewUserMessage(fmt.Sprintf("msg-%d", i)))
			_ = m.Messages()
			_ = m.Len()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, m.Len())
}
