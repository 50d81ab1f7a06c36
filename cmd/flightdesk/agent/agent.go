package agent

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	agentpkg "flightdesk/internal/agent"
	"flightdesk/internal/booking"
	"flightdesk/internal/config"
	"flightdesk/internal/db"
	"flightdesk/internal/history"
	"flightdesk/internal/llm"
	"flightdesk/internal/tools"
	"flightdesk/internal/trace"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	request string
	envFile string
)

var Cmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the airline customer service agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// The key is checked before anything talks to the model; a missing
		// key is a clean startup failure, not a mid-run surprise.
		apiKey, err := cfg.OpenAIKey()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		shutdown, err := trace.Init(ctx, trace.Config{
			Endpoint: cfg.Trace.Endpoint,
			URLPath:  cfg.Trace.URLPath,
			APIKey:   cfg.TraceAPIKey(),
		})
		if err != nil {
			slog.Warn("tracing disabled", "error", err)
		} else {
			defer shutdown(context.Background())
		}

		database, err := db.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		store := booking.NewStore(database)
		if err := store.Seed(ctx); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}

		provider := llm.NewOpenAI(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model)
		registry := tools.NewRegistry(store, cfg.Tools.BraveAPIKey)
		runner := agentpkg.NewReactRunner(provider, registry,
			agentpkg.WithHistory(history.NewStore(database)))

		sessionID := uuid.NewString()

		if request != "" {
			return runOnce(ctx, runner, sessionID, request)
		}
		return runInteractive(ctx, runner, sessionID)
	},
}

func init() {
	Cmd.Flags().StringVarP(&request, "request", "r", "", "run a single request and exit")
	Cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file")
}

func runOnce(ctx context.Context, runner agentpkg.Runner, sessionID, message string) error {
	answer, err := runner.Run(ctx, sessionID, message, printEvent)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runInteractive(ctx context.Context, runner agentpkg.Runner, sessionID string) error {
	fmt.Println("=== Flightdesk Airline Customer Service ===")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nUser: ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" || message == "exit" || message == "quit" || message == "bye" {
			fmt.Println("Thank you for using our service. Goodbye!")
			break
		}

		answer, err := runner.Run(ctx, sessionID, message, printEvent)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		fmt.Println("Agent:", answer)
	}
	return scanner.Err()
}

func printEvent(ev agentpkg.Event) {
	switch ev.Type {
	case agentpkg.EventToolCall:
		if data, ok := ev.Data.(map[string]string); ok {
			fmt.Printf("  [tool] %s(%s)\n", data["name"], data["arguments"])
		}
	case agentpkg.EventError:
		fmt.Fprintf(os.Stderr, "  [error] %v\n", ev.Data)
	}
}
