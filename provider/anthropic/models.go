package anthropic

// Model identifiers for Anthropic chat models.
const (
	ModelClaudeSonnet4 = "claude-sonnet-4-20250514"
	ModelClaudeOpus4   = "claude-opus-4-20250514"
	ModelClaude35Haiku = "claude-3-5-haiku-20241022"

	// DefaultModel is used when no model is configured.
	DefaultModel = ModelClaudeSonnet4
)
