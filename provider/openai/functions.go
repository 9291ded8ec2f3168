package openai

import (
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	ai "github.com/GPTPlayers/gpt-players"
)

func convertFunctions(functions []ai.Function) []openai.ChatCompletionToolParam {
	if len(functions) == 0 {
		return nil
	}
	result := make([]openai.ChatCompletionToolParam, len(functions))
	for i, f := range functions {
		var params shared.FunctionParameters
		if len(f.Parameters) > 0 {
			json.Unmarshal(f.Parameters, &params)
		}
		result[i] = openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        f.Name,
				Description: openai.String(f.Description),
				Parameters:  params,
			},
		}
	}
	return result
}

func convertFunctionChoice(choice ai.FunctionChoice) openai.ChatCompletionToolChoiceOptionUnionParam {
	switch choice {
	case ai.FunctionChoiceNone:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("none"),
		}
	case ai.FunctionChoiceRequired:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("required"),
		}
	default:
		return openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}
}

func extractFunctionCalls(msg openai.ChatCompletionMessage) []ai.FunctionCall {
	if len(msg.ToolCalls) == 0 {
		return nil
	}
	result := make([]ai.FunctionCall, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		result[i] = ai.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}
	}
	return result
}

func extractAccumulatedCalls(toolCalls []openai.ChatCompletionMessageToolCall) []ai.FunctionCall {
	if len(toolCalls) == 0 {
		return nil
	}
	result := make([]ai.FunctionCall, len(toolCalls))
	for i, tc := range toolCalls {
		result[i] = ai.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}
	}
	return result
}
