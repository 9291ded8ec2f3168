package gptplayers

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Function describes a callable function to the model.
type Function struct {
	// Name is the unique identifier for the function within a registry.
	Name string
	// Description explains what the function does (helps the model
	// decide when to call it).
	Description string
	// Parameters is a JSON Schema object defining the function parameters.
	Parameters json.RawMessage
}

// FunctionCall represents a request from the model to invoke a function.
type FunctionCall struct {
	// ID is a unique identifier for this call (used to match results).
	ID string `json:"id"`
	// Name is the name of the function to invoke.
	Name string `json:"name"`
	// Arguments is a JSON object string containing the arguments.
	Arguments string `json:"arguments"`
}

// GenerateCallID creates a unique function call identifier for
// providers that do not supply one.
func GenerateCallID() string {
	return "call-" + uuid.New().String()
}

// ErrorKind classifies recoverable dispatch failures. These are
// reported back into the conversation so the model can adjust its next
// call; they are never raised to the agent's caller.
type ErrorKind string

const (
	// ErrorKindUnknownFunction means the call named an unregistered function.
	ErrorKindUnknownFunction ErrorKind = "unknown_function"
	// ErrorKindArgument means the arguments were malformed JSON, missing
	// required parameters, or failed schema validation.
	ErrorKindArgument ErrorKind = "argument"
	// ErrorKindExecution means the function was invoked and failed.
	ErrorKindExecution ErrorKind = "execution"
	// ErrorKindSerialization means the function returned a value that
	// could not be serialized to JSON.
	ErrorKindSerialization ErrorKind = "serialization"
)

// FunctionResult represents the outcome of dispatching a function call.
type FunctionResult struct {
	// CallID matches the ID from the corresponding FunctionCall.
	CallID string `json:"callId"`
	// Name is the function that was (or was not) invoked.
	Name string `json:"name"`
	// Content is the JSON-serialized return value, or an error message
	// when IsError is set.
	Content string `json:"content"`
	// IsError indicates the result is an error descriptor.
	IsError bool `json:"isError,omitempty"`
	// ErrorKind classifies the failure when IsError is set.
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
}

// FunctionChoice controls how the model uses functions.
type FunctionChoice string

const (
	// FunctionChoiceAuto lets the model decide when to call functions (default).
	FunctionChoiceAuto FunctionChoice = "auto"
	// FunctionChoiceNone disables function calling for the request.
	FunctionChoiceNone FunctionChoice = "none"
	// FunctionChoiceRequired forces the model to call a function.
	FunctionChoiceRequired FunctionChoice = "required"
)
