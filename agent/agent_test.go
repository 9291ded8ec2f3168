package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/function"
)

// mockProvider returns scripted responses in order and records the
// message slices and offered functions it was called with.
type mockProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	errs      []error
	calls     [][]ai.Message
	functions [][]string
}

func (m *mockProvider) Complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]ai.Message, len(messages))
	copy(snapshot, messages)
	m.calls = append(m.calls, snapshot)

	options := ai.ApplyOptions(opts...)
	names := make([]string, len(options.Functions))
	for i, f := range options.Functions {
		names[i] = f.Name
	}
	m.functions = append(m.functions, names)

	idx := len(m.calls) - 1
	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	// Default: plain reply without function calls.
	return &ai.Response{Content: "done talking"}, nil
}

func textResponse(content string) *ai.Response {
	return &ai.Response{Content: content, FinishReason: "stop"}
}

func callResponse(calls ...ai.FunctionCall) *ai.Response {
	return &ai.Response{FinishReason: "tool_calls", FunctionCalls: calls}
}

func newCalcRegistry(t *testing.T, invocations *int) *function.Registry {
	t.Helper()
	type calcArgs struct {
		A int `json:"a" required:"true"`
		B int `json:"b" required:"true"`
	}
	return function.NewRegistry().Add(
		function.Func("calculator", "Add two numbers", func(ctx context.Context, args calcArgs) (any, error) {
			if invocations != nil {
				*invocations++
			}
			return args.A + args.B, nil
		}),
	)
}

func TestThinkAndActImmediateReply(t *testing.T) {
	invocations := 0
	provider := &mockProvider{responses: []*ai.Response{textResponse("42")}}

	a := New("bot", "You are terse.", provider, newCalcRegistry(t, &invocations))
	a.ReceiveMessage(ai.NewUserMessage("What is the answer?"))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, "42", result.Response.Content)
	assert.Zero(t, invocations, "no function should run when none is requested")
	require.Len(t, provider.calls, 1)
}

func TestThinkAndActDispatchLoop(t *testing.T) {
	invocations := 0
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(ai.FunctionCall{ID: "c1", Name: "calculator", Arguments: `{"a": 2, "b": 3}`}),
		textResponse("The sum is 5."),
	}}

	a := New("bot", "You do arithmetic with functions.", provider, newCalcRegistry(t, &invocations))
	a.ReceiveMessage(ai.NewUserMessage("What is 2 + 3?"))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 2, result.Rounds)
	assert.Equal(t, "The sum is 5.", result.Response.Content)
	assert.Equal(t, 1, invocations)

	// The second request must carry the assistant call and its result.
	require.Len(t, provider.calls, 2)
	second := provider.calls[1]
	require.GreaterOrEqual(t, len(second), 4)

	assistant := second[len(second)-2]
	assert.Equal(t, ai.RoleAssistant, assistant.Role)
	require.Len(t, assistant.FunctionCalls, 1)
	assert.Equal(t, "c1", assistant.FunctionCalls[0].ID)

	results := second[len(second)-1]
	assert.Equal(t, ai.RoleFunction, results.Role)
	require.Len(t, results.FunctionResults, 1)
	assert.Equal(t, "c1", results.FunctionResults[0].CallID)
	assert.Equal(t, "5", results.FunctionResults[0].Content)
}

func TestThinkAndActRoundBudget(t *testing.T) {
	// The model asks for a call every round and never stops.
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(ai.FunctionCall{ID: "c1", Name: "calculator", Arguments: `{"a": 1, "b": 1}`}),
		callResponse(ai.FunctionCall{ID: "c2", Name: "calculator", Arguments: `{"a": 2, "b": 2}`}),
		callResponse(ai.FunctionCall{ID: "c3", Name: "calculator", Arguments: `{"a": 3, "b": 3}`}),
		callResponse(ai.FunctionCall{ID: "c4", Name: "calculator", Arguments: `{"a": 4, "b": 4}`}),
	}}

	invocations := 0
	a := New("bot", "", provider, newCalcRegistry(t, &invocations),
		WithFunctionCallRepeats(3))
	a.ReceiveMessage(ai.NewUserMessage("Keep adding."))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err, "exhausting the budget is not an error")

	assert.Equal(t, TerminationRoundsExhausted, result.Termination)
	assert.Equal(t, 3, result.Rounds)
	assert.Equal(t, 3, invocations)
	assert.Len(t, provider.calls, 3)

	// Partial conversation is preserved: user + 3 x (assistant, results).
	msgs := result.Messages()
	assert.Len(t, msgs, 7)
}

func TestThinkAndActErrorResultContinuesLoop(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(ai.FunctionCall{ID: "c1", Name: "no_such_function", Arguments: `{}`}),
		textResponse("I could not find that function."),
	}}

	a := New("bot", "", provider, function.NewRegistry())
	a.ReceiveMessage(ai.NewUserMessage("Try something."))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)

	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 2, result.Rounds)

	// The error descriptor was fed back to the model.
	second := provider.calls[1]
	results := second[len(second)-1]
	require.Len(t, results.FunctionResults, 1)
	assert.True(t, results.FunctionResults[0].IsError)
	assert.Equal(t, ai.ErrorKindUnknownFunction, results.FunctionResults[0].ErrorKind)
}

func TestThinkAndActProviderError(t *testing.T) {
	wantErr := errors.New("connection refused")
	provider := &mockProvider{errs: []error{wantErr}}

	a := New("bot", "", provider, function.NewRegistry())
	a.ReceiveMessage(ai.NewUserMessage("Hello?"))

	result, err := a.ThinkAndAct(context.Background())
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, TerminationError, result.Termination)
	assert.Equal(t, 0, result.Rounds)
	// The user message survives in the snapshot.
	assert.NotEmpty(t, result.Messages())
}

func TestThinkAndActContextCancelled(t *testing.T) {
	provider := &mockProvider{}
	a := New("bot", "", provider, function.NewRegistry())
	a.ReceiveMessage(ai.NewUserMessage("Hello?"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := a.ThinkAndAct(ctx)
	require.Error(t, err)
	assert.Equal(t, TerminationCancelled, result.Termination)
	assert.Empty(t, provider.calls)
}

func TestThinkAndActIgnoreNoneFunctionMessages(t *testing.T) {
	t.Run("default keeps plain replies out of memory", func(t *testing.T) {
		provider := &mockProvider{responses: []*ai.Response{textResponse("Just chatting.")}}
		a := New("bot", "prompt", provider, function.NewRegistry())
		a.ReceiveMessage(ai.NewUserMessage("hi"))

		_, err := a.ThinkAndAct(context.Background())
		require.NoError(t, err)

		// system + user only; the assistant reply is not stored.
		assert.Equal(t, 2, a.Memory().Len())
	})

	t.Run("disabled stores plain replies in memory", func(t *testing.T) {
		provider := &mockProvider{responses: []*ai.Response{textResponse("Noted.")}}
		a := New("bot", "prompt", provider, function.NewRegistry(),
			WithIgnoreNoneFunctionMessages(false))
		a.ReceiveMessage(ai.NewUserMessage("hi"))

		result, err := a.ThinkAndAct(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, a.Memory().Len())
		last, ok := result.LastMessage()
		require.True(t, ok)
		assert.Equal(t, ai.RoleAssistant, last.Role)
		assert.Equal(t, "Noted.", last.Content)
	})
}

func TestThinkAndActEmptyRound(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(ai.FunctionCall{ID: "c1", Name: "note", Arguments: `{}`}),
		callResponse(ai.FunctionCall{ID: "c2", Name: "note", Arguments: `{}`}),
	}}

	invocations := 0
	registry := function.NewRegistry().Add(
		function.Func("note", "Record a note", func(ctx context.Context, args struct{}) (any, error) {
			invocations++
			return nil, nil
		}),
	)

	a := New("bot", "", provider, registry,
		WithIgnoreNoneFunctionMessages(false))
	a.ReceiveMessage(ai.NewUserMessage("Take note."))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)

	// The nil result round carries no information, so the run stops
	// after the first round instead of spinning on empty replies.
	assert.Equal(t, TerminationEmptyRound, result.Termination)
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, 1, invocations)
	require.Len(t, provider.calls, 1)
}

func TestThinkAndActRoleScopesFunctions(t *testing.T) {
	noop := func(ctx context.Context, args struct{}) (any, error) { return "ok", nil }
	registry := function.NewRegistry().Add(
		function.Func("shared", "Everyone", noop),
		function.Func("narrate", "Game master only", noop).ForRoles("gm"),
	)

	t.Run("role sees matching functions", func(t *testing.T) {
		provider := &mockProvider{responses: []*ai.Response{textResponse("ok")}}
		a := New("gamemaster", "", provider, registry, WithRole("gm"))
		a.ReceiveMessage(ai.NewUserMessage("hi"))

		_, err := a.ThinkAndAct(context.Background())
		require.NoError(t, err)
		require.Len(t, provider.functions, 1)
		assert.Equal(t, []string{"shared", "narrate"}, provider.functions[0])
	})

	t.Run("other roles see only unfiltered functions", func(t *testing.T) {
		provider := &mockProvider{responses: []*ai.Response{textResponse("ok")}}
		a := New("extra", "", provider, registry)
		a.ReceiveMessage(ai.NewUserMessage("hi"))

		_, err := a.ThinkAndAct(context.Background())
		require.NoError(t, err)
		require.Len(t, provider.functions, 1)
		assert.Equal(t, []string{"shared"}, provider.functions[0])
		assert.Equal(t, "", a.Role())
	})
}

func TestThinkAndActParallelCalls(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(
			ai.FunctionCall{ID: "c1", Name: "calculator", Arguments: `{"a": 1, "b": 2}`},
			ai.FunctionCall{ID: "c2", Name: "calculator", Arguments: `{"a": 10, "b": 20}`},
			ai.FunctionCall{ID: "c3", Name: "calculator", Arguments: `{"a": 100, "b": 200}`},
		),
		textResponse("All done."),
	}}

	var mu sync.Mutex
	invocations := 0
	type calcArgs struct {
		A int `json:"a" required:"true"`
		B int `json:"b" required:"true"`
	}
	registry := function.NewRegistry().Add(
		function.Func("calculator", "Add", func(ctx context.Context, args calcArgs) (any, error) {
			mu.Lock()
			invocations++
			mu.Unlock()
			return args.A + args.B, nil
		}),
	)

	a := New("bot", "", provider, registry, WithParallelCalls(true))
	a.ReceiveMessage(ai.NewUserMessage("Add them all."))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 3, invocations)

	// Results arrive in request order regardless of completion order.
	second := provider.calls[1]
	results := second[len(second)-1]
	require.Len(t, results.FunctionResults, 3)
	assert.Equal(t, "c1", results.FunctionResults[0].CallID)
	assert.Equal(t, "3", results.FunctionResults[0].Content)
	assert.Equal(t, "c2", results.FunctionResults[1].CallID)
	assert.Equal(t, "30", results.FunctionResults[1].Content)
	assert.Equal(t, "c3", results.FunctionResults[2].CallID)
	assert.Equal(t, "300", results.FunctionResults[2].Content)
}

func TestThinkAndActEvents(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		callResponse(ai.FunctionCall{ID: "c1", Name: "calculator", Arguments: `{"a": 1, "b": 1}`}),
		textResponse("2"),
	}}

	var events []EventType
	a := New("bot", "", provider, newCalcRegistry(t, nil),
		WithEventHandler(func(ev Event) {
			events = append(events, ev.Type)
		}))
	a.ReceiveMessage(ai.NewUserMessage("1+1?"))

	_, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventRoundStart,
		EventCallRequested,
		EventCallResult,
		EventRoundEnd,
		EventRoundStart,
		EventComplete,
	}, events)
}

func TestReceiveMessageChaining(t *testing.T) {
	a := New("bot", "prompt", &mockProvider{}, function.NewRegistry())

	got := a.ReceiveMessage(ai.NewUserMessage("one")).
		ReceiveMessage(ai.NewUserMessage("two"))

	assert.Same(t, a, got)
	assert.Equal(t, 3, a.Memory().Len())

	msgs := a.Memory().Messages()
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, "one", msgs[1].Content)
	assert.Equal(t, "two", msgs[2].Content)
}

func TestThinkAndActUsageAggregation(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		{
			FunctionCalls: []ai.FunctionCall{{ID: "c1", Name: "calculator", Arguments: `{"a": 1, "b": 1}`}},
			Usage:         ai.Usage{InputTokens: 10, OutputTokens: 5},
		},
		{
			Content: "2",
			Usage:   ai.Usage{InputTokens: 20, OutputTokens: 7},
		},
	}}

	a := New("bot", "", provider, newCalcRegistry(t, nil))
	a.ReceiveMessage(ai.NewUserMessage("1+1?"))

	result, err := a.ThinkAndAct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, result.Usage.InputTokens)
	assert.Equal(t, 12, result.Usage.OutputTokens)
}

func TestWorld(t *testing.T) {
	provider := &mockProvider{}
	registry := function.NewRegistry()
	world := NewWorld(provider, registry)

	alice := world.AddAgent("alice", "You are Alice.")
	world.AddAgent("bob", "You are Bob.")

	assert.Equal(t, 2, world.Len())
	assert.Equal(t, []string{"alice", "bob"}, world.Names())

	got, ok := world.Get("alice")
	require.True(t, ok)
	assert.Same(t, alice, got)

	_, ok = world.Get("carol")
	assert.False(t, ok)

	require.True(t, world.Deliver("bob", ai.NewUserMessage("hello bob")))
	bob, _ := world.Get("bob")
	assert.Equal(t, 2, bob.Memory().Len())

	assert.False(t, world.Deliver("carol", ai.NewUserMessage("nobody home")))
}
