package google

// Model identifiers for Google Gemini chat models.
const (
	ModelGemini25Pro   = "gemini-2.5-pro"
	ModelGemini25Flash = "gemini-2.5-flash"

	// DefaultModel is used when no model is configured.
	DefaultModel = ModelGemini25Flash
)
