package gptplayers

import "context"

// CompletionProvider is the contract the agent loop depends on: given a
// conversation and the available function descriptors (via options), it
// returns either a final assistant message or one or more function-call
// requests. The core depends only on this contract, not on any
// vendor's wire format.
type CompletionProvider interface {
	// Complete sends a conversation and returns a complete response.
	Complete(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

// StreamingCompletionProvider is implemented by providers that can also
// stream token deltas. The channel is closed when the stream completes
// or fails; callers should check StreamEvent.Err.
type StreamingCompletionProvider interface {
	CompletionProvider

	CompleteStream(ctx context.Context, messages []Message, opts ...Option) (<-chan StreamEvent, error)
}
