// Package config holds the configuration probe and the non-secret settings
// shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/trainy/internal/llm"
)

// EnvPrefix is the prefix of every Trainy environment variable.
const EnvPrefix = "TRAINY"

// SelectedProvider returns the provider named by TRAINY_LLM_PROVIDER,
// defaulting to OpenRouter.
func SelectedProvider() string {
	if p := strings.TrimSpace(os.Getenv("TRAINY_LLM_PROVIDER")); p != "" {
		return p
	}
	return llm.ProviderOpenRouter
}

// IsConfigured reports whether the credential for the selected provider is
// present in the environment right now. It has no side effects and caches
// nothing, so a credential exported after startup is picked up by the next
// call.
func IsConfigured() bool {
	return IsConfiguredFor(SelectedProvider())
}

// IsConfiguredFor reports whether provider can be used with the current
// environment. The mock provider is always configured; unknown providers
// never are.
func IsConfiguredFor(provider string) bool {
	if provider == llm.ProviderMock {
		return true
	}
	_, ok := llm.LookupCredential(provider)
	return ok
}

// CredentialEnv returns the primary environment variable holding the API
// key for provider, or "" when none is needed.
func CredentialEnv(provider string) string {
	vars := llm.CredentialVars(provider)
	if len(vars) == 0 {
		return ""
	}
	return vars[0]
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Variables
// already set win. Missing files are skipped. With no paths it reads
// ".env" in the working directory.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Settings are the non-secret knobs read from defaults, trainy.yaml,
// TRAINY_* variables and command-line flags, in increasing precedence.
type Settings struct {
	LLM    LLMSettings    `mapstructure:"llm"`
	Course CourseSettings `mapstructure:"course"`
	DB     string         `mapstructure:"db"`
	Log    LogSettings    `mapstructure:"log"`
	Serve  ServeSettings  `mapstructure:"serve"`
}

type LLMSettings struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type CourseSettings struct {
	Quiz        bool    `mapstructure:"quiz"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type LogSettings struct {
	File string `mapstructure:"file"`
	Mode string `mapstructure:"mode"`
}

type ServeSettings struct {
	Addr  string  `mapstructure:"addr"`
	Rate  float64 `mapstructure:"rate"` // generation requests per second
	Burst int     `mapstructure:"burst"`
}

// flagKeys maps command-line flag names to settings keys.
var flagKeys = map[string]string{
	"provider": "llm.provider",
	"model":    "llm.model",
	"db":       "db",
	"log-file": "log.file",
	"addr":     "serve.addr",
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile is an explicit config file path. When empty, trainy.yaml
	// is searched in "." and $XDG_CONFIG_HOME/trainy.
	ConfigFile string

	// Flags, when set, override everything else for flags the user changed.
	Flags *pflag.FlagSet
}

// Load resolves Settings.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("trainy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "trainy"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := opts.Flags.Lookup("no-quiz"); f != nil && f.Changed && f.Value.String() == "true" {
			v.Set("course.quiz", false)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", llm.ProviderOpenRouter)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.max_attempts", 1)

	v.SetDefault("course.quiz", true)
	v.SetDefault("course.max_tokens", 4096)
	v.SetDefault("course.temperature", 0.7)

	v.SetDefault("db", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.mode", "dev")

	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.rate", 0.5)
	v.SetDefault("serve.burst", 3)
}

// Validate rejects settings no command could run with.
func (s *Settings) Validate() error {
	switch s.LLM.Provider {
	case llm.ProviderOpenRouter, llm.ProviderOpenAI, llm.ProviderAnthropic,
		llm.ProviderGemini, llm.ProviderMock:
	default:
		return fmt.Errorf("unknown llm.provider %q", s.LLM.Provider)
	}
	if s.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", s.LLM.Timeout)
	}
	if s.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be at least 1, got %d", s.LLM.MaxAttempts)
	}
	if s.Course.MaxTokens <= 0 {
		return fmt.Errorf("course.max_tokens must be positive, got %d", s.Course.MaxTokens)
	}
	if s.Course.Temperature < 0 || s.Course.Temperature > 1 {
		return fmt.Errorf("course.temperature must be within [0, 1], got %v", s.Course.Temperature)
	}
	return nil
}

// LLMConfig merges the settings into the environment-derived provider
// configuration. Credentials always come from the environment.
func (s *Settings) LLMConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	cfg.Provider = s.LLM.Provider
	cfg.SetModel(s.LLM.Model)
	cfg.Timeout = s.LLM.Timeout
	cfg.Retry.MaxAttempts = s.LLM.MaxAttempts
	return cfg
}

// Configured reports whether the provider chosen by these settings has
// its credential.
func (s *Settings) Configured() bool {
	return IsConfiguredFor(s.LLM.Provider)
}
