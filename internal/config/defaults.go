package config

// DefaultAPIURL is where the frontend looks for the backend when neither
// API_URL nor api_url is set.
const DefaultAPIURL = "http://localhost:8000"

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI: "gpt-3.5-turbo",
	ProviderGoogle: "gemini-2.0-flash",
	ProviderOllama: "llama3",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:                 ProviderOpenAI,
		Model:                    defaultModels[ProviderOpenAI],
		Temperature:              0.5,
		MaxTokens:                0,
		CompletionTimeoutSeconds: 60,
		Port:                     8000,
		UIPort:                   8501,
		APIURL:                   DefaultAPIURL,
		AllowAllOrigins:          true,
		DataDir:                  ".flowgen",
		HistoryEnabled:           true,
		LogLevel:                 "info",
		LogFormat:                LogFormatCLI,
	}
}

// DefaultModel returns the default model for the given provider, falling
// back to the OpenAI default for unknown providers.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}
