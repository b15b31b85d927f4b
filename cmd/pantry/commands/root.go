package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/moolen/pantry/internal/logging"
)

const Version = "0.1.0"

var (
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Pantry - Multi-Agent Meal Planning",
	Long: `Pantry is a multi-agent meal planning system. An orchestrator agent
delegates to a recipe planning agent and a budget agent to turn a natural
language request into a costed meal plan with a consolidated shopping list.

The recipe catalog can also be served over MCP, and the planning agent can
be exposed to other agent processes over the A2A protocol.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A .env file is convenient for GOOGLE_API_KEY during development.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", getEnv("LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(a2aCmd)
	rootCmd.AddCommand(catalogCmd)
}

// HandleError prints error and exits
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// setupLog initializes the logging system from the --log-level flag.
func setupLog() error {
	return logging.Initialize(logLevel)
}

// getEnv returns the environment variable value or a fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
