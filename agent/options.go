package agent

import (
	"time"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/retry"
)

// Options holds configuration for an Agent.
type Options struct {
	// FunctionCallRepeats is the maximum number of query/dispatch
	// rounds per ThinkAndAct invocation. Default 10.
	FunctionCallRepeats int

	// IgnoreNoneFunctionMessages controls how plain assistant replies
	// are treated. When true (the default), a reply without function
	// calls terminates the run and is returned without being appended
	// to the agent's memory. When false, the reply is appended, and a
	// round whose function results are all empty also terminates the
	// run.
	IgnoreNoneFunctionMessages bool

	// Environment is passed to environment-bound handlers on dispatch.
	Environment any

	// Role scopes which registered functions the agent is offered.
	// Functions registered with a role filter are only visible when the
	// filter matches this role. Empty by default.
	Role string

	// ParallelCalls dispatches the calls of a round concurrently.
	// Results are always recorded in request order.
	ParallelCalls bool

	// HandlerTimeout bounds each individual handler invocation.
	// Zero means no per-handler timeout.
	HandlerTimeout time.Duration

	// Retry configures retry behavior for completion requests.
	// Defaults to disabled.
	Retry retry.Config

	// EventHandler receives events during the run. May be nil.
	EventHandler func(Event)

	// CompletionOptions are forwarded to every completion request,
	// e.g. ai.WithModel or ai.WithTemperature.
	CompletionOptions []ai.Option
}

// Option configures an Agent.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		FunctionCallRepeats:        10,
		IgnoreNoneFunctionMessages: true,
		Retry:                      retry.Disabled(),
	}
}

// WithFunctionCallRepeats sets the round budget per run. Values below
// one are ignored.
func WithFunctionCallRepeats(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.FunctionCallRepeats = n
		}
	}
}

// WithIgnoreNoneFunctionMessages sets whether plain assistant replies
// are kept out of the agent's memory.
func WithIgnoreNoneFunctionMessages(ignore bool) Option {
	return func(o *Options) {
		o.IgnoreNoneFunctionMessages = ignore
	}
}

// WithEnvironment sets the environment handed to environment-bound
// handlers.
func WithEnvironment(env any) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

// WithRole sets the agent's role name, scoping the function
// descriptors offered to the model to those whose role filter matches.
func WithRole(role string) Option {
	return func(o *Options) {
		o.Role = role
	}
}

// WithParallelCalls enables concurrent dispatch of the calls within a
// round.
func WithParallelCalls(parallel bool) Option {
	return func(o *Options) {
		o.ParallelCalls = parallel
	}
}

// WithHandlerTimeout bounds each handler invocation.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithRetry configures retry behavior for completion requests.
func WithRetry(cfg retry.Config) Option {
	return func(o *Options) {
		o.Retry = cfg
	}
}

// WithEventHandler sets the event callback.
func WithEventHandler(fn func(Event)) Option {
	return func(o *Options) {
		o.EventHandler = fn
	}
}

// WithCompletionOptions forwards options to every completion request.
func WithCompletionOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.CompletionOptions = append(o.CompletionOptions, opts...)
	}
}
