// Command demo runs an interactive function-calling agent against the
// first configured provider. It mirrors a small knowledge-base
// scenario: the agent answers questions using only facts it retrieves
// from an in-memory database through registered functions.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	ai "github.com/GPTPlayers/gpt-players"
	"github.com/GPTPlayers/gpt-players/agent"
	"github.com/GPTPlayers/gpt-players/function"
	"github.com/GPTPlayers/gpt-players/provider/anthropic"
	"github.com/GPTPlayers/gpt-players/provider/google"
	"github.com/GPTPlayers/gpt-players/provider/openai"
	"github.com/GPTPlayers/gpt-players/retry"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	godotenv.Load()
	ctx := context.Background()

	provider, label, err := selectProvider(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using %s\n\n", label)

	registry := function.NewRegistry()
	registerFunctions(registry)

	db := NewDatabase()

	bot := agent.New("Bot",
		"You are a helpful bot. You can use functions to access the knowledge from a database. "+
			"Answer questions using only the knowledge from the database.",
		provider, registry,
		agent.WithEnvironment(db),
		agent.WithFunctionCallRepeats(10),
		agent.WithIgnoreNoneFunctionMessages(false),
		agent.WithRetry(retry.DefaultConfig()),
		agent.WithEventHandler(printEvent),
	)

	fmt.Println("Ask a question, ::mem to dump memory, q to quit.")
	for {
		fmt.Print(">> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		switch line {
		case "exit", "q", "quit", "quit()":
			return
		case "::mem":
			printMemory(bot)
			continue
		case "":
			continue
		}

		bot.ReceiveMessage(ai.NewUserMessage(line))
		result, err := bot.ThinkAndAct(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if result.Response != nil && result.Response.Content != "" {
			fmt.Printf("Bot: %s\n", result.Response.Content)
		}
		fmt.Printf("[%s after %d round(s), %d in / %d out tokens]\n",
			result.Termination, result.Rounds,
			result.Usage.InputTokens, result.Usage.OutputTokens)
	}
}

// selectProvider picks the first provider with a configured API key.
func selectProvider(ctx context.Context) (ai.CompletionProvider, string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return anthropic.New(key), "Anthropic (Claude)", nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return openai.New(key), "OpenAI (GPT)", nil
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c, err := google.New(ctx, key)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create Google client: %w", err)
		}
		return c, "Google (Gemini)", nil
	}
	return nil, "", fmt.Errorf("no API keys found: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY")
}

func printEvent(ev agent.Event) {
	switch ev.Type {
	case agent.EventCallRequested:
		fmt.Printf("  → %s(%s)\n", ev.Call.Name, ev.Call.Arguments)
	case agent.EventCallResult:
		if ev.Result.IsError {
			fmt.Printf("  ← [%s] %s\n", ev.Result.ErrorKind, ev.Result.Content)
		} else {
			fmt.Printf("  ← %s\n", ev.Result.Content)
		}
	}
}

func printMemory(bot *agent.Agent) {
	for _, msg := range bot.Memory().Messages() {
		content := msg.Content
		if content == "" && len(msg.FunctionCalls) > 0 {
			var calls []string
			for _, fc := range msg.FunctionCalls {
				calls = append(calls, fmt.Sprintf("%s(%s)", fc.Name, fc.Arguments))
			}
			content = strings.Join(calls, ", ")
		}
		if content == "" && len(msg.FunctionResults) > 0 {
			var results []string
			for _, fr := range msg.FunctionResults {
				results = append(results, fr.Content)
			}
			content = strings.Join(results, ", ")
		}
		fmt.Printf("[%s] %s\n", msg.Role, content)
	}
}
