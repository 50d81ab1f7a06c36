package serve

import (
	"context"
	"fmt"
	"log/slog"

	agentpkg "flightdesk/internal/agent"
	"flightdesk/internal/booking"
	"flightdesk/internal/config"
	"flightdesk/internal/db"
	"flightdesk/internal/gateway"
	"flightdesk/internal/history"
	"flightdesk/internal/llm"
	"flightdesk/internal/tools"
	"flightdesk/internal/trace"

	"github.com/spf13/cobra"
)

var (
	addr    string
	envFile string
)

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		apiKey, err := cfg.OpenAIKey()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Gateway.Addr = addr
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

		srv := gateway.NewServer(runner)
		slog.Info("starting gateway", "addr", cfg.Gateway.Addr)
		return srv.ListenAndServe(cfg.Gateway.Addr)
	},
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "override gateway listen address")
	Cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file")
}
