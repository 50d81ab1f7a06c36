package main

import (
	"os"

	"flightdesk/cmd/flightdesk/agent"
	"flightdesk/cmd/flightdesk/serve"
	"flightdesk/cmd/flightdesk/setup"
	"flightdesk/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.Init()
	rootCmd := &cobra.Command{
		Use:   "flightdesk",
		Short: "Flightdesk is an airline customer service agent",
	}

	rootCmd.AddCommand(setup.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(agent.Cmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
