package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/GPTPlayers/gpt-players"
)

func convertFunctions(functions []ai.Function) []anthropic.ToolUnionParam {
	if len(functions) == 0 {
		return nil
	}
	result := make([]anthropic.ToolUnionParam, len(functions))
	for i, f := range functions {
		var schema map[string]interface{}
		if len(f.Parameters) > 0 {
			json.Unmarshal(f.Parameters, &schema)
		}

		var required []string
		if reqVal, ok := schema["required"].([]interface{}); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: schema["properties"],
			Required:   required,
		}

		toolParam := anthropic.ToolParam{
			Name:        f.Name,
			Description: anthropic.String(f.Description),
			InputSchema: inputSchema,
		}

		result[i] = anthropic.ToolUnionParam{
			OfTool: &toolParam,
		}
	}
	return result
}

func convertFunctionChoice(choice ai.FunctionChoice) anthropic.ToolChoiceUnionParam {
	switch choice {
	case ai.FunctionChoiceNone:
		return anthropic.ToolChoiceUnionParam{
			OfNone: &anthropic.ToolChoiceNoneParam{},
		}
	case ai.FunctionChoiceRequired:
		return anthropic.ToolChoiceUnionParam{
			OfAny: &anthropic.ToolChoiceAnyParam{},
		}
	default:
		return anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}
}
