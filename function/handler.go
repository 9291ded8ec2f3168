package function

import (
	"context"

	ai "github.com/GPTPlayers/gpt-players"
)

// Handler executes a function call and returns its result value.
//
// env is the caller-owned environment; it is nil unless the function was
// registered as environment-bound. The returned value must be
// JSON-serializable; a nil value is reported to the model as "done".
type Handler func(ctx context.Context, env any, call ai.FunctionCall) (any, error)

// TypedHandler executes a function call with arguments unmarshaled into T.
type TypedHandler[T any] func(ctx context.Context, args T) (any, error)

// EnvHandler executes an environment-bound function call. The dispatch
// environment is asserted to E before invocation.
type EnvHandler[E, T any] func(ctx context.Context, env E, args T) (any, error)
