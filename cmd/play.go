package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/trainy/internal/app"
	"github.com/abhisek/trainy/internal/config"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds the generator and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(settings, tuiLogFile(settings))
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	llmCfg := settings.LLMConfig()
	opts := app.Options{
		Provider:      settings.LLM.Provider,
		CredentialEnv: config.CredentialEnv(settings.LLM.Provider),
		Model:         llmCfg.Model(),
		Logger:        logger,
	}

	if settings.Configured() {
		gen, err := buildGenerator(ctx, settings, st.EventRepo(), logger)
		if err != nil {
			return fmt.Errorf("build generator: %w", err)
		}
		opts.Generator = gen
		opts.Configured = true
	} else {
		logger.Warn("llm provider not configured", "provider", settings.LLM.Provider)
	}

	return app.Run(ctx, opts)
}
