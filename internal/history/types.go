// Package history persists generated flowcharts so they can be listed and
// downloaded again.
package history

import (
	"errors"
	"time"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("generation not found")

// Record is one stored generation.
type Record struct {
	ID           string               `json:"id"`
	Grammar      flowchart.Grammar    `json:"grammar"`
	Prompt       string               `json:"prompt"`
	Direction    flowchart.Direction  `json:"direction"`
	Complexity   flowchart.Complexity `json:"complexity"`
	Code         string               `json:"code"`
	Model        string               `json:"model"`
	InputTokens  int                  `json:"input_tokens"`
	OutputTokens int                  `json:"output_tokens"`
	CostUSD      float64              `json:"cost_usd"`
	LatencyMS    int64                `json:"latency_ms"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ListFilter narrows List results. A zero Limit means DefaultLimit.
type ListFilter struct {
	Grammar flowchart.Grammar
	Limit   int
	Offset  int
}

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// FromResult converts a generator result into a Record.
func FromResult(res *flowchart.Result) Record {
	return Record{
		Grammar:      res.Grammar,
		Prompt:       res.Request.Prompt,
		Direction:    res.Request.Direction,
		Complexity:   res.Request.Complexity,
		Code:         res.Code,
		Model:        res.Model,
		InputTokens:  res.InputTokens,
		OutputTokens: res.OutputTokens,
		CostUSD:      res.CostUSD,
		LatencyMS:    res.Latency.Milliseconds(),
	}
}
