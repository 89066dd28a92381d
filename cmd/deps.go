package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/trainy/internal/config"
	"github.com/abhisek/trainy/internal/course"
	"github.com/abhisek/trainy/internal/llm"
	"github.com/abhisek/trainy/internal/logging"
	"github.com/abhisek/trainy/internal/store"
)

// loadSettings reads .env, then trainy.yaml, TRAINY_* variables and flags.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	configFile, _ := cmd.Flags().GetString("config")
	s, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

// resolveDBPath returns the database path using --db / db setting first,
// then TRAINY_DB, then the default XDG path.
func resolveDBPath(s *config.Settings) (string, error) {
	if s.DB != "" {
		return s.DB, store.EnsureDir(s.DB)
	}
	return store.DefaultDBPath()
}

func openStore(s *config.Settings) (*store.Store, error) {
	dbPath, err := resolveDBPath(s)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// newLogger builds the command logger. fallbackFile is used when no log
// file is configured; empty means stderr.
func newLogger(s *config.Settings, fallbackFile string) (*logging.Logger, error) {
	file := s.Log.File
	if file == "" {
		file = fallbackFile
	}
	return logging.New(logging.Options{Mode: s.Log.Mode, File: file})
}

// tuiLogFile places the terminal app's log next to its database.
func tuiLogFile(s *config.Settings) string {
	dbPath, err := resolveDBPath(s)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(dbPath), "trainy.log")
}

// buildGenerator wires the configured provider into a course generator.
// The mock provider serves the built-in demo course.
func buildGenerator(ctx context.Context, s *config.Settings, events store.EventRepo, logger *logging.Logger) (*course.Generator, error) {
	mock := llm.NewMockProvider()
	mock.SetFallback(llm.MockResponse{
		Content: course.DemoJSON(),
		Usage:   llm.Usage{InputTokens: 900, OutputTokens: 1200, TotalTokens: 2100},
	})

	provider, err := llm.NewProvider(ctx, s.LLMConfig(), llm.Deps{
		Events: events,
		Logger: logger,
		Mock:   mock,
	})
	if err != nil {
		return nil, err
	}

	return course.NewGenerator(provider, courseOptions(s), logger), nil
}

func courseOptions(s *config.Settings) course.Options {
	return course.Options{
		Quiz:        s.Course.Quiz,
		MaxTokens:   s.Course.MaxTokens,
		Temperature: s.Course.Temperature,
		Timeout:     s.LLM.Timeout,
	}
}
