package agent

import (
	"context"
	"sync"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/function"
	"github.com/GPTPlayers/gpt-players/memory"
	"github.com/GPTPlayers/gpt-players/retry"
)

// Agent drives a bounded perceive/decide/act loop over a completion
// provider and a function registry. Incoming messages accumulate via
// ReceiveMessage; ThinkAndAct runs rounds of model queries and
// function dispatch until the model stops requesting calls or the
// round budget is spent.
type Agent struct {
	name     string
	provider ai.CompletionProvider
	registry *function.Registry
	opts     *Options
	memory   *memory.Memory
}

// New creates an agent with the given role prompt. The prompt, when
// non-empty, becomes the first system message of the agent's memory.
func New(name, prompt string, provider ai.CompletionProvider, registry *function.Registry, opts ...Option) *Agent {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	mem := memory.New()
	if prompt != "" {
		mem.Append(ai.NewSystemMessage(prompt))
	}
	return &Agent{
		name:     name,
		provider: provider,
		registry: registry,
		opts:     o,
		memory:   mem,
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.name
}

// Role returns the agent's role name, empty when unset.
func (a *Agent) Role() string {
	return a.opts.Role
}

// Memory returns the agent's conversation memory.
func (a *Agent) Memory() *memory.Memory {
	return a.memory
}

// ReceiveMessage appends a message to the agent's memory without
// triggering any reasoning. It returns the agent for chaining.
func (a *Agent) ReceiveMessage(msg ai.Message) *Agent {
	a.memory.Append(msg)
	return a
}

// ReceiveMessages appends several messages in order.
func (a *Agent) ReceiveMessages(msgs ...ai.Message) *Agent {
	a.memory.Append(msgs...)
	return a
}

// ThinkAndAct runs the agent loop: query the model, dispatch any
// requested function calls, feed the results back, and repeat for at
// most FunctionCallRepeats rounds. A reply without function calls
// terminates the run. Exhausting the budget is a normal terminal
// outcome with a nil error; the partial conversation is available on
// the Result. Provider failures terminate the run with both a Result
// describing progress so far and the error itself.
func (a *Agent) ThinkAndAct(ctx context.Context) (*Result, error) {
	o := a.opts
	completionOpts := make([]ai.Option, 0, len(o.CompletionOptions)+1)
	completionOpts = append(completionOpts, ai.WithFunctions(a.registry.FunctionsFor(o.Role)))
	completionOpts = append(completionOpts, o.CompletionOptions...)

	result := &Result{Termination: TerminationRoundsExhausted}
	defer func() {
		result.messages = a.memory.Messages()
	}()

	for round := 1; round <= o.FunctionCallRepeats; round++ {
		if err := ctx.Err(); err != nil {
			result.Termination = TerminationCancelled
			a.emit(Event{Type: EventError, Round: round, Err: err})
			return result, err
		}
		a.emit(Event{Type: EventRoundStart, Round: round})

		resp, err := a.complete(ctx, completionOpts)
		if err != nil {
			result.Termination = TerminationError
			if ctx.Err() != nil {
				result.Termination = TerminationCancelled
			}
			a.emit(Event{Type: EventError, Round: round, Err: err})
			return result, err
		}

		result.Rounds = round
		result.Response = resp
		result.Usage.Add(resp.Usage)

		if len(resp.FunctionCalls) == 0 {
			result.Termination = TerminationComplete
			if !o.IgnoreNoneFunctionMessages {
				a.memory.Append(ai.Message{
					ID:      ai.GenerateMessageID(),
					Role:    ai.RoleAssistant,
					Content: resp.Content,
				})
			}
			a.emit(Event{Type: EventComplete, Round: round, Response: resp, Message: string(TerminationComplete)})
			return result, nil
		}

		a.memory.Append(ai.Message{
			ID:            ai.GenerateMessageID(),
			Role:          ai.RoleAssistant,
			Content:       resp.Content,
			FunctionCalls: resp.FunctionCalls,
		})

		results := a.dispatchRound(ctx, round, resp.FunctionCalls)
		a.memory.Append(ai.NewFunctionResultMessage(results...))
		a.emit(Event{Type: EventRoundEnd, Round: round, Response: resp})

		if !o.IgnoreNoneFunctionMessages && allEmpty(results) {
			result.Termination = TerminationEmptyRound
			a.emit(Event{Type: EventComplete, Round: round, Response: resp, Message: string(TerminationEmptyRound)})
			return result, nil
		}
	}

	a.emit(Event{Type: EventComplete, Round: result.Rounds, Response: result.Response, Message: string(TerminationRoundsExhausted)})
	return result, nil
}

// complete issues one completion request, retrying transient failures
// when retry is configured.
func (a *Agent) complete(ctx context.Context, opts []ai.Option) (*ai.Response, error) {
	fn := func() (*ai.Response, error) {
		resp, err := a.provider.Complete(ctx, a.memory.Messages(), opts...)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, ai.NewPermanentError("provider returned no response", 0, nil)
		}
		return resp, nil
	}
	if a.opts.Retry.MaxAttempts > 1 {
		return retry.Do(ctx, a.opts.Retry, fn)
	}
	return fn()
}

// dispatchRound resolves every call of a round. Results are always
// returned in request order, whether dispatch runs sequentially or in
// parallel.
func (a *Agent) dispatchRound(ctx context.Context, round int, calls []ai.FunctionCall) []ai.FunctionResult {
	results := make([]ai.FunctionResult, len(calls))
	for i := range calls {
		a.emit(Event{Type: EventCallRequested, Round: round, Call: &calls[i]})
	}
	if a.opts.ParallelCalls && len(calls) > 1 {
		var wg sync.WaitGroup
		for i := range calls {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = a.dispatch(ctx, calls[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range calls {
			results[i] = a.dispatch(ctx, calls[i])
		}
	}
	for i := range results {
		a.emit(Event{Type: EventCallResult, Round: round, Call: &calls[i], Result: &results[i]})
	}
	return results
}

func (a *Agent) dispatch(ctx context.Context, call ai.FunctionCall) ai.FunctionResult {
	if a.opts.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.HandlerTimeout)
		defer cancel()
	}
	return a.registry.Dispatch(ctx, a.opts.Environment, call)
}

func (a *Agent) emit(ev Event) {
	if a.opts.EventHandler != nil {
		a.opts.EventHandler(ev)
	}
}

func allEmpty(results []ai.FunctionResult) bool {
	for _, r := range results {
		if r.Content != "" && r.Content != `"done"` {
			return false
		}
	}
	return true
}
