package google

import (
	"encoding/json"

	"google.golang.org/genai"

	ai "github.com/GPTPlayers/gpt-players"
)

func convertMessages(messages []ai.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		role := "user"
		switch msg.Role {
		case ai.RoleAssistant:
			role = "model"
		case ai.RoleSystem, ai.RoleUser, ai.RoleFunction:
			// Gemini has no separate system or function-result role;
			// both travel as user content.
			role = "user"
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, fc := range msg.FunctionCalls {
			var args map[string]any
			json.Unmarshal([]byte(fc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: fc.Name,
					Args: args,
				},
			})
		}

		for _, fr := range msg.FunctionResults {
			// Gemini matches responses to calls by function name, not
			// call ID.
			var result map[string]any
			if err := json.Unmarshal([]byte(fr.Content), &result); err != nil {
				result = map[string]any{"result": fr.Content}
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     fr.Name,
					Response: result,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents
}
