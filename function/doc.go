// Package function provides the registry and dispatcher that connect
// model-issued function calls to Go code.
//
// A [Registry] is built once at setup: each registration associates a
// unique name with a handler, a JSON Schema for its parameters, and an
// environment-bound flag. Parameter schemas are compiled at
// registration, so a malformed schema fails fast instead of at call
// time. Descriptors come back out of the registry in registration
// order, which keeps the sequence sent to the model deterministic.
//
// [Registry.Dispatch] takes a FunctionCall produced by the model,
// validates its arguments against the registered schema, invokes the
// handler (passing the environment for environment-bound functions),
// and wraps the outcome — value or failure — as a FunctionResult that
// re-enters the conversation.
package function
