package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trainy",
	Short: "Generate short workplace courses with an LLM",
	Long: "Trainy turns a one-line request into a short course: an introduction, " +
		"five to ten steps and an optional three-question quiz.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// ExecuteContext runs the command tree with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides TRAINY_DB env var)")
	pf.String("config", "", "Path to a trainy.yaml settings file")
	pf.String("provider", "", "LLM provider: openrouter, openai, anthropic, gemini or mock")
	pf.String("model", "", "Model for the selected provider")
	pf.Bool("no-quiz", false, "Generate courses without the final quiz")
	pf.String("log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
