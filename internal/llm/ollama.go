package llm

import (
	"context"
	"fmt"
	"net/url"

	"github.com/JexSrs/go-ollama"
)

// OllamaProvider implements Provider against a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *ollama.Ollama
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", baseURL, err)
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  ollama.New(*u),
	}, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaResult struct {
	text string
	err  error
}

// Complete runs a single non-streaming generation. The client has no
// context support, so cancellation abandons the in-flight call.
func (p *OllamaProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	system, user := SplitMessages(req.Messages)

	done := make(chan ollamaResult, 1)
	go func() {
		res, err := p.client.Generate(
			p.client.Generate.WithModel(model),
			p.client.Generate.WithSystem(system),
			p.client.Generate.WithPrompt(user),
		)
		if err != nil {
			done <- ollamaResult{err: fmt.Errorf("ollama generate: %w", err)}
			return
		}
		if !res.Done {
			done <- ollamaResult{err: fmt.Errorf("ollama generation did not complete")}
			return
		}
		done <- ollamaResult{text: res.Response}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &CompletionResponse{
			Content:      r.text,
			InputTokens:  EstimateTokens(system) + EstimateTokens(user),
			OutputTokens: EstimateTokens(r.text),
			Model:        model,
			FinishReason: "stop",
		}, nil
	}
}
