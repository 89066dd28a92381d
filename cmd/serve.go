package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/trainy/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve course generation over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		logger, err := newLogger(settings, "")
		if err != nil {
			return err
		}
		defer logger.Sync()

		st, err := openStore(settings)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := api.Options{
			Rate:   settings.Serve.Rate,
			Burst:  settings.Serve.Burst,
			Logger: logger,
		}
		if settings.Configured() {
			gen, err := buildGenerator(ctx, settings, st.EventRepo(), logger)
			if err != nil {
				return fmt.Errorf("build generator: %w", err)
			}
			opts.Generator = gen
			opts.Configured = true
		} else {
			logger.Warn("llm provider not configured; course requests will return 503",
				"provider", settings.LLM.Provider)
		}

		return api.New(opts).ListenAndServe(ctx, settings.Serve.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}
