// Package anthropic adapts the Anthropic Messages API to the
// ai.CompletionProvider interface, including function calling and
// streaming.
package anthropic
