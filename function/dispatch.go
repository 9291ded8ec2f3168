package function

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/GPTPlayers/gpt-players"
)

// Dispatch validates and executes a single function-call request,
// returning the outcome as a FunctionResult.
//
// Every failure mode is recoverable: unknown names, bad
// arguments, handler errors and panics, and unserializable return
// values all become error descriptors in the result so the model can
// adjust its next call. Dispatch never returns an error to the caller.
//
// env is passed verbatim to environment-bound handlers and may be nil;
// invoking those handlers may mutate it, which is the mechanism by
// which agents act on a world.
func (r *Registry) Dispatch(ctx context.Context, env any, call ai.FunctionCall) ai.FunctionResult {
	reg, err := r.Resolve(call.Name)
	if err != nil {
		return errorResult(call, ai.ErrorKindUnknownFunction,
			fmt.Sprintf("%q is not a callable function", call.Name))
	}

	args, errMsg := reg.prepareArguments(call.Arguments)
	if errMsg != "" {
		return errorResult(call, ai.ErrorKindArgument, errMsg)
	}
	call.Arguments = args

	value, err := invoke(ctx, reg, env, call)
	if err != nil {
		return errorResult(call, ai.ErrorKindExecution, err.Error())
	}

	if value == nil {
		return ai.FunctionResult{CallID: call.ID, Name: call.Name, Content: `"done"`}
	}

	content, err := json.Marshal(value)
	if err != nil {
		return errorResult(call, ai.ErrorKindSerialization,
			fmt.Sprintf("result is not JSON-serializable: %v", err))
	}

	return ai.FunctionResult{CallID: call.ID, Name: call.Name, Content: string(content)}
}

// prepareArguments parses the raw argument JSON, fills in schema
// defaults for missing optional parameters, and validates the result
// against the compiled parameter schema. It returns the (possibly
// rewritten) argument JSON, or a non-empty error message.
func (reg *Registered) prepareArguments(raw string) (string, string) {
	if raw == "" {
		raw = "{}"
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", fmt.Sprintf("arguments are not valid JSON: %v", err)
	}

	if obj, ok := parsed.(map[string]any); ok && len(reg.defaults) > 0 {
		changed := false
		for name, def := range reg.defaults {
			if _, present := obj[name]; !present {
				obj[name] = def
				changed = true
			}
		}
		if changed {
			merged, err := json.Marshal(obj)
			if err == nil {
				raw = string(merged)
				parsed = obj
			}
		}
	}

	if err := reg.compiled.Validate(parsed); err != nil {
		return "", fmt.Sprintf("arguments do not match the parameter schema: %v", err)
	}

	return raw, ""
}

// invoke runs the handler, converting panics into errors so a failing
// callable can never take down the agent loop.
func invoke(ctx context.Context, reg *Registered, env any, call ai.FunctionCall) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			value = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	if !reg.EnvBound {
		env = nil
	}
	return reg.Handler(ctx, env, call)
}

func errorResult(call ai.FunctionCall, kind ai.ErrorKind, msg string) ai.FunctionResult {
	content, _ := json.Marshal(map[string]string{"error": msg})
	return ai.FunctionResult{
		CallID:    call.ID,
		Name:      call.Name,
		Content:   string(content),
		IsError:   true,
		ErrorKind: kind,
	}
}
