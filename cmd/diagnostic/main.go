// File: cmd/diagnostic/main.go
//
// diagnostic checks an OpenAI-compatible endpoint the same way the server does:
// it lists models and, when --model is given, sends a single-turn completion.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/iyunix/go-mindster/internal/domain"
	"github.com/iyunix/go-mindster/internal/services"
	"github.com/iyunix/go-mindster/internal/services/ai"
)

func main() {
	baseURL := pflag.String("base-url", domain.DefaultProviderBaseURL, "provider base URL")
	model := pflag.String("model", "", "model for a test completion; empty skips it")
	prompt := pflag.String("prompt", "Reply with the single word: pong", "prompt for the test completion")
	envFile := pflag.String("env-file", ".env", "optional .env file providing PROVIDER_API_KEY")
	timeout := pflag.Duration("timeout", 60*time.Second, "overall deadline")
	pflag.Parse()

	_ = godotenv.Load(*envFile)
	apiKey := os.Getenv("PROVIDER_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "PROVIDER_API_KEY is not set")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logger := services.NewLogger("diagnostic", "development", "warn")
	client := ai.NewOpenAIProvider(ai.DefaultConfig(), logger)
	cred := ai.Credential{BaseURL: *baseURL, APIKey: apiKey}

	models, err := client.ListModels(ctx, cred)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list models: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d models\n", *baseURL, len(models))
	for _, m := range models {
		fmt.Println("  " + m)
	}

	if *model == "" {
		return
	}
	reply, err := client.Complete(ctx, cred, *model, []ai.ChatMessage{{Role: domain.RoleUser, Content: *prompt}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "completion: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s replied: %s\n", *model, reply)
}
