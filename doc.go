// Package gptplayers exposes arbitrary callable Go functions to a
// conversational language model and runs the agent loop that lets the
// model decide which of them to call.
//
// The library is built from small pieces:
//
//   - [Function], [FunctionCall], [FunctionResult]: the data model shared
//     between a function registry and a completion provider.
//   - [CompletionProvider]: the black-box contract for the language-model
//     service — a conversation plus function descriptors in, either a
//     final assistant message or function-call requests out.
//   - [github.com/GPTPlayers/gpt-players/function]: the registry that maps
//     function names to handlers and parameter schemas, and the dispatcher
//     that validates and executes model-issued calls.
//   - [github.com/GPTPlayers/gpt-players/agent]: the bounded think-and-act
//     loop that alternates between querying the model and dispatching the
//     functions it selects.
//
// # Basic Usage
//
// Register functions, pick a provider, run an agent:
//
//	type CalcArgs struct {
//	    Expression string `json:"expression" desc:"Math expression, e.g. '2 + 2'" required:"true"`
//	}
//
//	registry := function.NewRegistry().Add(
//	    function.Func("calculator", "Evaluate a math expression",
//	        func(ctx context.Context, args CalcArgs) (any, error) {
//	            return map[string]any{"result": eval(args.Expression)}, nil
//	        }),
//	)
//
//	bot := agent.New("bot", "You are a helpful bot.", openai.New(apiKey), registry,
//	    agent.WithFunctionCallRepeats(5),
//	)
//	bot.ReceiveMessage(gptplayers.NewUserMessage("what is 2+2?"))
//	result, err := bot.ThinkAndAct(ctx)
//
// # Environment-Bound Functions
//
// Functions that act on a stateful environment receive it as an implicit
// first argument; the environment is owned by the caller and mutated by
// the functions the model calls:
//
//	function.EnvFunc("review_info", "View information from the database",
//	    func(ctx context.Context, db *Database, args struct{}) (any, error) {
//	        return db.InfoList, nil
//	    })
//
// # Error Model
//
// Registration-time failures (duplicate names, underivable schemas) are
// fatal and surface immediately. Dispatch-time failures (unknown
// function, bad arguments, handler errors, unserializable results) are
// recoverable by design: they become [FunctionResult] error descriptors
// in the conversation so the model can self-correct, and never
// propagate to the loop's caller.
package gptplayers
