package agent

import (
	ai "github.com/GPTPlayers/gpt-players"
)

// EventType identifies the kind of event occurring during a
// think-and-act run.
type EventType string

const (
	// EventRoundStart fires at the beginning of each round.
	EventRoundStart EventType = "round_start"

	// EventCallRequested fires when the model requests a function call.
	EventCallRequested EventType = "call_requested"

	// EventCallResult fires after a function call has been dispatched.
	EventCallResult EventType = "call_result"

	// EventRoundEnd fires after all calls of a round are resolved.
	EventRoundEnd EventType = "round_end"

	// EventComplete fires when the run reaches a terminal state.
	EventComplete EventType = "complete"

	// EventError fires when the completion service fails.
	EventError EventType = "error"
)

// Event represents an observable occurrence during a run. Events are
// delivered synchronously to the handler configured with
// WithEventHandler; the core does no logging of its own.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// Round is the current round number (1-indexed).
	Round int

	// Call contains the function call for call-related events.
	Call *ai.FunctionCall

	// Result contains the result for EventCallResult events.
	Result *ai.FunctionResult

	// Response contains the model response for EventRoundEnd and
	// EventComplete events.
	Response *ai.Response

	// Err contains the error for EventError events.
	Err error

	// Message contains additional context (e.g. the termination reason).
	Message string
}

// TerminationReason indicates why a run stopped.
type TerminationReason string

const (
	// TerminationComplete indicates the model replied without function
	// calls.
	TerminationComplete TerminationReason = "complete"

	// TerminationRoundsExhausted indicates the round budget was spent.
	// This is a defined terminal outcome, not an error; the partial
	// conversation is surfaced in the Result.
	TerminationRoundsExhausted TerminationReason = "rounds_exhausted"

	// TerminationEmptyRound indicates a round produced only empty
	// function results while the agent was configured to stop on them.
	TerminationEmptyRound TerminationReason = "empty_round"

	// TerminationCancelled indicates context cancellation.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationError indicates the completion service failed or
	// returned an unusable response.
	TerminationError TerminationReason = "error"
)

// Result represents the final outcome of a think-and-act run.
type Result struct {
	// Response is the last response received from the model, if any.
	Response *ai.Response

	// Rounds is the number of completed query/dispatch cycles.
	Rounds int

	// Termination indicates why the run stopped.
	Termination TerminationReason

	// Usage aggregates token usage across all rounds.
	Usage ai.Usage

	// messages is the conversation snapshot at termination.
	messages []ai.Message
}

// Messages returns the conversation as it stood when the run
// terminated, including any partial progress from an exhausted or
// failed run.
func (r *Result) Messages() []ai.Message {
	return r.messages
}

// LastMessage returns the final message of the conversation snapshot.
func (r *Result) LastMessage() (ai.Message, bool) {
	if len(r.messages) == 0 {
		return ai.Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}
