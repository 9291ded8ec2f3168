package gptplayers

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleFunction marks messages carrying function execution results
	// back to the model.
	RoleFunction Role = "function"
)

// Message represents a single message in a conversation.
//
// A conversation is an append-only, causally ordered sequence of
// messages owned by a single agent.
type Message struct {
	// ID is an optional unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// FunctionCalls contains invocation requests from an assistant message.
	// Only populated when Role is RoleAssistant and the model wants to
	// call functions.
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
	// FunctionResults contains results from dispatched function calls.
	// Only populated when Role is RoleFunction.
	FunctionResults []FunctionResult `json:"functionResults,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewSystemMessage creates a system instruction message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewFunctionResultMessage creates a message carrying function results.
// This is the form in which dispatch outcomes re-enter the conversation.
func NewFunctionResultMessage(results ...FunctionResult) Message {
	return Message{
		Role:            RoleFunction,
		FunctionResults: results,
	}
}

// Response represents a complete reply from a completion provider:
// either a final assistant message, or one or more function-call
// requests (check len(FunctionCalls) > 0).
type Response struct {
	Content      string `json:"content,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Usage        Usage  `json:"usage"`
	// FunctionCalls contains any invocation requests from the model.
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// Usage contains token usage information for a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Add accumulates usage from another request.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// StreamEvent represents a single event in a streaming response.
type StreamEvent struct {
	// Delta contains the incremental content for this event.
	Delta string
	// Done indicates if this is the final event in the stream.
	Done bool
	// Response contains the final response data when Done is true.
	Response *Response
	// Err contains any error that occurred during streaming.
	Err error
}
