package function

import (
	"encoding/json"
	"regexp"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	ai "github.com/GPTPlayers/gpt-players"
)

// emptySchema is the parameter schema used for functions that take no
// arguments.
const emptySchema = `{"type":"object","properties":{}}`

// Registered combines a function descriptor with its handler and
// environment binding.
type Registered struct {
	Function ai.Function
	Handler  Handler
	// EnvBound marks functions that receive the dispatch environment.
	EnvBound bool

	compiled *jsonschema.Schema
	defaults map[string]any
	roleRE   *regexp.Regexp
}

// VisibleTo reports whether the function is offered to agents with the
// given role. Functions registered without a role filter are visible to
// every role.
func (reg *Registered) VisibleTo(role string) bool {
	return reg.roleRE == nil || reg.roleRE.MatchString(role)
}

// Registry maps function names to their handlers and parameter schemas.
// It is built once at setup and safe for concurrent use; descriptor
// order is registration order, so repeated calls to Functions with an
// unchanged registry produce identical sequences.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*Registered
	order []string
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[string]*Registered),
	}
}

// Register adds a function with its handler to the registry.
// It returns a *DuplicateNameError if the name is already present, or a
// *gptplayers.SchemaError if the parameter schema does not compile.
// The registry is unchanged after a failed registration, and no
// function is ever invoked during registration.
func (r *Registry) Register(fn ai.Function, handler Handler) error {
	return r.register(fn, handler, false, "")
}

// RegisterEnv is like Register but marks the function as environment-bound:
// the dispatcher passes its environment reference to the handler.
func (r *Registry) RegisterEnv(fn ai.Function, handler Handler) error {
	return r.register(fn, handler, true, "")
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(fn ai.Function, handler Handler) {
	if err := r.Register(fn, handler); err != nil {
		panic(err)
	}
}

func (r *Registry) register(fn ai.Function, handler Handler, envBound bool, roleFilter string) error {
	if len(fn.Parameters) == 0 {
		fn.Parameters = json.RawMessage(emptySchema)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[fn.Name]; exists {
		return &DuplicateNameError{Name: fn.Name}
	}

	var roleRE *regexp.Regexp
	if roleFilter != "" {
		// Anchored so the pattern must match the whole role name.
		re, err := regexp.Compile("^(?:" + roleFilter + ")$")
		if err != nil {
			return &RoleFilterError{Name: fn.Name, Pattern: roleFilter, Msg: err.Error()}
		}
		roleRE = re
	}

	compiled, err := jsonschema.CompileString(fn.Name+".schema.json", string(fn.Parameters))
	if err != nil {
		return &ai.SchemaError{Type: "object", Field: fn.Name, Msg: err.Error()}
	}

	r.items[fn.Name] = &Registered{
		Function: fn,
		Handler:  handler,
		EnvBound: envBound,
		compiled: compiled,
		defaults: extractDefaults(fn.Parameters),
		roleRE:   roleRE,
	}
	r.order = append(r.order, fn.Name)
	return nil
}

// Resolve retrieves a registered function by name.
// It returns a *UnknownFunctionError if the name is not present.
func (r *Registry) Resolve(name string) (*Registered, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.items[name]
	if !ok {
		return nil, &UnknownFunctionError{Name: name}
	}
	return reg, nil
}

// Functions returns all registered descriptors in registration order.
// This is the sequence passed to the completion provider.
func (r *Registry) Functions() []ai.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fns := make([]ai.Function, 0, len(r.order))
	for _, name := range r.order {
		fns = append(fns, r.items[name].Function)
	}
	return fns
}

// FunctionsFor returns the descriptors visible to agents with the
// given role, in registration order. Functions without a role filter
// are always included.
func (r *Registry) FunctionsFor(role string) []ai.Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fns := make([]ai.Function, 0, len(r.order))
	for _, name := range r.order {
		if reg := r.items[name]; reg.VisibleTo(role) {
			fns = append(fns, reg.Function)
		}
	}
	return fns
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered functions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Add registers one or more functions, panicking on error.
// It returns the registry for fluent chaining:
//
//	registry := function.NewRegistry().Add(
//	    function.Func("calculator", "Evaluate an expression", calcFn),
//	    function.EnvFunc("review_info", "View database info", reviewFn),
//	)
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		if err := r.register(reg.Function, reg.Handler, reg.EnvBound, reg.RoleFilter); err != nil {
			panic(err)
		}
	}
	return r
}

// extractDefaults pulls property defaults out of a parameter schema so
// dispatch can fill in missing optional arguments.
func extractDefaults(schema json.RawMessage) map[string]any {
	var parsed struct {
		Properties map[string]struct {
			Default any `json:"default"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(schema, &parsed); err != nil {
		return nil
	}

	var defaults map[string]any
	for name, prop := range parsed.Properties {
		if prop.Default == nil {
			continue
		}
		if defaults == nil {
			defaults = make(map[string]any)
		}
		defaults[name] = prop.Default
	}
	return defaults
}
