package config

import "time"

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// LogFormat selects the log handler.
type LogFormat string

const (
	LogFormatCLI  LogFormat = "cli"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level flowgen configuration, corresponding to .flowgen.yml.
type Config struct {
	Provider                 ProviderType `yaml:"provider" koanf:"provider"`
	Model                    string       `yaml:"model" koanf:"model"`
	BaseURL                  string       `yaml:"base_url,omitempty" koanf:"base_url"`
	Temperature              float64      `yaml:"temperature" koanf:"temperature"`
	MaxTokens                int          `yaml:"max_tokens" koanf:"max_tokens"`
	CompletionTimeoutSeconds int          `yaml:"completion_timeout_seconds" koanf:"completion_timeout_seconds"`

	Port            int    `yaml:"port" koanf:"port"`
	UIPort          int    `yaml:"ui_port" koanf:"ui_port"`
	APIURL          string `yaml:"api_url" koanf:"api_url"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	DataDir        string `yaml:"data_dir" koanf:"data_dir"`
	HistoryEnabled bool   `yaml:"history_enabled" koanf:"history_enabled"`

	LogLevel  string    `yaml:"log_level" koanf:"log_level"`
	LogFormat LogFormat `yaml:"log_format" koanf:"log_format"`
}

// CompletionTimeout returns the per-call deadline for the completion
// request. Zero means no deadline.
func (c *Config) CompletionTimeout() time.Duration {
	if c.CompletionTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CompletionTimeoutSeconds) * time.Second
}
