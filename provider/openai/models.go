package openai

// Model identifiers for OpenAI chat completion models.
const (
	ModelGPT5      = "gpt-5"
	ModelGPT5Mini  = "gpt-5-mini"
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"

	// DefaultModel is used when no model is configured.
	DefaultModel = ModelGPT4oMini
)
