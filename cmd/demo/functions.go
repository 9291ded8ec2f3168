package main

import (
	"context"
	"fmt"

	"github.com/GPTPlayers/gpt-players/function"
)

type calculatorArgs struct {
	Op string  `json:"op" desc:"The arithmetic operation" enum:"add,sub,mul,div" required:"true"`
	A  float64 `json:"a" desc:"First operand" required:"true"`
	B  float64 `json:"b" desc:"Second operand" required:"true"`
}

func calculator(ctx context.Context, args calculatorArgs) (any, error) {
	switch args.Op {
	case "add":
		return args.A + args.B, nil
	case "sub":
		return args.A - args.B, nil
	case "mul":
		return args.A * args.B, nil
	case "div":
		if args.B == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return args.A / args.B, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", args.Op)
	}
}

func registerFunctions(registry *function.Registry) {
	registry.Add(
		function.EnvFunc[*Database]("review_info",
			"View the next piece of information from the database. "+
				"Call this function multiple times to find more useful information.",
			reviewInfo),
		function.Func("calculator",
			"Perform basic arithmetic on two numbers.",
			calculator),
	)
}
