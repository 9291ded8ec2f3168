// Package agent implements a bounded function-calling loop on top of a
// completion provider and a function registry.
//
// An Agent accumulates messages through ReceiveMessage and reasons over
// them with ThinkAndAct, which alternates model queries with function
// dispatch for a bounded number of rounds:
//
//	registry := function.NewRegistry()
//	registry.MustRegister(function.Func[WeatherArgs](
//		"get_weather", "Get the current weather for a city.", getWeather))
//
//	a := agent.New("assistant", "You are a helpful assistant.",
//		provider, registry,
//		agent.WithFunctionCallRepeats(5))
//
//	a.ReceiveMessage(ai.NewUserMessage("What is the weather in Oslo?"))
//	result, err := a.ThinkAndAct(ctx)
//
// The run terminates when the model replies without requesting
// function calls, when the round budget is exhausted, or when the
// provider fails. Exhaustion is a normal outcome: the error is nil and
// Result.Termination reports TerminationRoundsExhausted.
//
// Multiple agents can share a provider and registry through a World,
// which routes messages between them by name.
package agent
