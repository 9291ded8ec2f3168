// Package google adapts the Google Gemini API to the
// ai.CompletionProvider interface, including function calling and
// streaming.
package google
