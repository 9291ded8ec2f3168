package google

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	ai "github.com/GPTPlayers/gpt-players"
)

func convertFunctions(functions []ai.Function) []*genai.Tool {
	if len(functions) == 0 {
		return nil
	}

	funcs := make([]*genai.FunctionDeclaration, len(functions))
	for i, f := range functions {
		funcs[i] = &genai.FunctionDeclaration{
			Name:        f.Name,
			Description: f.Description,
			Parameters:  convertSchema(f.Parameters),
		}
	}

	return []*genai.Tool{{FunctionDeclarations: funcs}}
}

func convertFunctionChoice(choice ai.FunctionChoice) *genai.ToolConfig {
	switch choice {
	case ai.FunctionChoiceNone:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeNone,
			},
		}
	case ai.FunctionChoiceRequired:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAny,
			},
		}
	default:
		return &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		}
	}
}

// extractFunctionCalls collects function calls from response parts.
// Gemini does not assign call IDs, so synthetic ones are generated for
// correlation.
func extractFunctionCalls(parts []*genai.Part) []ai.FunctionCall {
	var calls []ai.FunctionCall
	for i, part := range parts {
		if part.FunctionCall != nil {
			args, _ := json.Marshal(part.FunctionCall.Args)
			calls = append(calls, ai.FunctionCall{
				ID:        fmt.Sprintf("call_%d_%s", i, part.FunctionCall.Name),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
		}
	}
	return calls
}
