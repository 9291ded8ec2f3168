package function

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/GPTPlayers/gpt-players"
)

// Registration holds a function and its handler for fluent registration
// via Registry.Add.
type Registration struct {
	Function ai.Function
	Handler  Handler
	EnvBound bool
	// RoleFilter restricts which agent roles see the function. Empty
	// means visible to every role.
	RoleFilter string
}

// ForRoles restricts the function's visibility to agents whose role
// matches the given regular expression. The pattern is anchored, so
// "gm" matches only the role "gm" and "player|npc" matches either role
// exactly.
func (reg Registration) ForRoles(pattern string) Registration {
	reg.RoleFilter = pattern
	return reg
}

// New creates a Registration from an explicitly supplied parameter
// schema. Use this when the schema is hand-written (for example with
// the schema package) rather than derived from a struct type.
func New(name, description string, parameters json.RawMessage, h Handler) Registration {
	return Registration{
		Function: ai.Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
		Handler: h,
	}
}

// Func creates a Registration for a stateless function with the
// parameter schema derived from T. Panics if schema derivation fails;
// use RegisterFunc for the error-returning form.
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	function.Func("search", "Search the knowledge base",
//	    func(ctx context.Context, args SearchArgs) (any, error) {
//	        return doSearch(args.Query), nil
//	    })
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	schema := ai.MustSchemaFor[T]()
	return Registration{
		Function: ai.Function{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
		Handler: typedHandler(fn),
	}
}

// EnvFunc creates a Registration for an environment-bound function: the
// dispatch environment is passed as the handler's second argument after
// asserting it to E. Panics if schema derivation fails.
//
//	function.EnvFunc("review_info", "View information from the database",
//	    func(ctx context.Context, db *Database, args struct{}) (any, error) {
//	        return db.Review(), nil
//	    })
func EnvFunc[E, T any](name, description string, fn EnvHandler[E, T]) Registration {
	schema := ai.MustSchemaFor[T]()
	return Registration{
		Function: ai.Function{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
		Handler:  envHandler(fn),
		EnvBound: true,
	}
}

// RegisterFunc registers a stateless typed function on the registry,
// returning any schema or duplicate-name error instead of panicking.
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}
	return r.Register(ai.Function{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}, typedHandler(fn))
}

// RegisterEnvFunc registers an environment-bound typed function on the
// registry, returning any schema or duplicate-name error.
func RegisterEnvFunc[E, T any](r *Registry, name, description string, fn EnvHandler[E, T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}
	return r.RegisterEnv(ai.Function{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}, envHandler(fn))
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

// MustRegisterEnvFunc is like RegisterEnvFunc but panics on error.
func MustRegisterEnvFunc[E, T any](r *Registry, name, description string, fn EnvHandler[E, T]) {
	if err := RegisterEnvFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

func typedHandler[T any](fn TypedHandler[T]) Handler {
	return func(ctx context.Context, _ any, call ai.FunctionCall) (any, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
}

func envHandler[E, T any](fn EnvHandler[E, T]) Handler {
	return func(ctx context.Context, env any, call ai.FunctionCall) (any, error) {
		bound, ok := env.(E)
		if !ok {
			var want E
			return nil, fmt.Errorf("requires an environment of type %T, got %T", want, env)
		}
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, err
		}
		return fn(ctx, bound, args)
	}
}
