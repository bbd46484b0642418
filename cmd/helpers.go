package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/ziadkadry99/flowgen/internal/client"
	"github.com/ziadkadry99/flowgen/internal/config"
	"github.com/ziadkadry99/flowgen/internal/db"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/history"
	"github.com/ziadkadry99/flowgen/internal/llm"
)

// clientGrace is added to the completion timeout for the frontend's HTTP
// client so the backend's 504 arrives before the client gives up.
const clientGrace = 15 * time.Second

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `flowgen init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	setupLogging(cfg)
	return cfg, nil
}

// generatorDeps is everything behind a Generator that needs closing.
type generatorDeps struct {
	Generator *flowchart.Generator
	History   *history.Store
	database  *db.DB
}

func (d *generatorDeps) Close() {
	if d.database != nil {
		d.database.Close()
	}
}

// createGeneratorFromConfig builds the provider, the optional history store
// and the Generator that ties them together. It fails when the provider's
// credential is missing.
func createGeneratorFromConfig(cfg *config.Config) (*generatorDeps, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	deps := &generatorDeps{}
	var recorder flowchart.Recorder
	if cfg.HistoryEnabled {
		database, err := db.OpenDir(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		deps.database = database
		deps.History = history.NewStore(database)
		recorder = deps.History
		log.WithField("path", database.Path()).Debug("history enabled")
	}

	deps.Generator = flowchart.NewGenerator(provider, flowchart.Settings{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.CompletionTimeout(),
	}, recorder)
	return deps, nil
}

// createBackendClient returns a client for the backend at cfg.APIURL.
func createBackendClient(cfg *config.Config) *client.Client {
	timeout := cfg.CompletionTimeout()
	if timeout > 0 {
		timeout += clientGrace
	}
	return client.New(cfg.APIURL, timeout)
}

// parseDirection accepts the wire value or the TB/LR shorthand.
func parseDirection(s string) (flowchart.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tb", "td", "down", strings.ToLower(string(flowchart.TopToBottom)):
		return flowchart.TopToBottom, nil
	case "lr", "right", strings.ToLower(string(flowchart.LeftToRight)):
		return flowchart.LeftToRight, nil
	}
	return "", fmt.Errorf("invalid direction %q: use %q or %q", s, flowchart.TopToBottom, flowchart.LeftToRight)
}

// parseComplexity accepts Simple, Medium or Detailed in any case.
func parseComplexity(s string) (flowchart.Complexity, error) {
	for _, c := range []flowchart.Complexity{flowchart.Simple, flowchart.Medium, flowchart.Detailed} {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid complexity %q: use Simple, Medium or Detailed", s)
}
