// Package openai adapts the OpenAI chat completions API to the
// ai.CompletionProvider interface, including function calling and
// streaming.
package openai
