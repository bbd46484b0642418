package flowchart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/ziadkadry99/flowgen/internal/llm"
	"github.com/ziadkadry99/flowgen/internal/telemetry"
)

// ErrTimeout is returned when the completion call exceeds its deadline.
var ErrTimeout = errors.New("completion timed out")

// ProviderError wraps a failure of the completion call itself. Its message
// is the provider's error text.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// InvalidRequestError reports a Request that failed validation.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string { return e.Err.Error() }

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// Result is a cleaned, validated flowchart plus accounting for the call
// that produced it.
type Result struct {
	Grammar      Grammar
	Request      Request
	Code         string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Latency      time.Duration
}

// Recorder receives every successful Result.
type Recorder interface {
	Record(ctx context.Context, res *Result) error
}

// Settings are the completion parameters shared by every request.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout bounds each completion call. Zero means no deadline.
	Timeout time.Duration
}

// Generator produces flowcharts with one completion call per request.
type Generator struct {
	provider llm.Provider
	settings Settings
	recorder Recorder
}

// NewGenerator creates a Generator. recorder may be nil.
func NewGenerator(provider llm.Provider, settings Settings, recorder Recorder) *Generator {
	return &Generator{
		provider: provider,
		settings: settings,
		recorder: recorder,
	}
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.settings.Model }

// Generate validates req, calls the provider once and returns the cleaned
// code. Failures are one of *InvalidRequestError, *ProviderError,
// ErrTimeout, ErrInvalidNodeShapes or a *D2SyntaxError.
func (g *Generator) Generate(ctx context.Context, grammar Grammar, req Request) (res *Result, err error) {
	ctx, span := telemetry.StartGenerateSpan(ctx, string(grammar), string(req.Direction), string(req.Complexity))
	defer func() {
		telemetry.ObserveResult(string(grammar), resultLabel(err))
		telemetry.EndSpan(span, err)
	}()

	if err := req.Validate(); err != nil {
		return nil, &InvalidRequestError{Err: err}
	}

	logger := log.WithFields(log.Fields{
		"grammar":    grammar,
		"direction":  req.Direction,
		"complexity": req.Complexity,
		"provider":   g.provider.Name(),
	})

	resp, latency, err := g.complete(ctx, grammar, req)
	if err != nil {
		logger.WithError(err).Warn("completion failed")
		return nil, err
	}

	code, err := Clean(grammar, req.Direction, resp.Content)
	if err != nil {
		logger.WithError(err).Warn("rejected generated flowchart")
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = g.settings.Model
	}
	res = &Result{
		Grammar:      grammar,
		Request:      req,
		Code:         code,
		Model:        model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		CostUSD:      llm.EstimateCost(g.settings.Model, resp.InputTokens, resp.OutputTokens),
		Latency:      latency,
	}
	logger.WithFields(log.Fields{
		"model":      res.Model,
		"latency_ms": latency.Milliseconds(),
		"tokens_in":  res.InputTokens,
		"tokens_out": res.OutputTokens,
	}).Info("generated flowchart")

	if g.recorder != nil {
		if rerr := g.recorder.Record(ctx, res); rerr != nil {
			logger.WithError(rerr).Warn("could not record flowchart history")
		}
	}
	return res, nil
}

func (g *Generator) complete(ctx context.Context, grammar Grammar, req Request) (*llm.CompletionResponse, time.Duration, error) {
	if g.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.settings.Timeout)
		defer cancel()
	}

	ctx, span := telemetry.StartCompletionSpan(ctx, g.provider.Name(), g.settings.Model)
	start := time.Now()
	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model: g.settings.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: SystemPrompt(grammar, req)},
			{Role: llm.RoleUser, Content: UserMessage(grammar, req)},
		},
		MaxTokens:   g.settings.MaxTokens,
		Temperature: g.settings.Temperature,
	})
	latency := time.Since(start)
	telemetry.EndSpan(span, err)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
			if g.settings.Timeout > 0 {
				return nil, latency, fmt.Errorf("%w after %s", ErrTimeout, g.settings.Timeout)
			}
			return nil, latency, ErrTimeout
		}
		return nil, latency, &ProviderError{Provider: g.provider.Name(), Err: err}
	}
	if resp == nil {
		return nil, latency, &ProviderError{Provider: g.provider.Name(), Err: errors.New("empty completion response")}
	}

	telemetry.ObserveCompletion(string(grammar), g.provider.Name(), latency, resp.InputTokens, resp.OutputTokens)
	return resp, latency, nil
}

func resultLabel(err error) string {
	var invalidReq *InvalidRequestError
	var provErr *ProviderError
	switch {
	case err == nil:
		return telemetry.ResultOK
	case errors.As(err, &invalidReq):
		return telemetry.ResultInvalidRequest
	case errors.Is(err, ErrTimeout):
		return telemetry.ResultTimeout
	case errors.As(err, &provErr):
		return telemetry.ResultProviderError
	default:
		return telemetry.ResultInvalid
	}
}
