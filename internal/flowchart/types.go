// Package flowchart turns a natural-language process description into
// Mermaid or D2 flowchart source with a single LLM completion, then cleans,
// repairs and validates the model output.
package flowchart

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the overall flow orientation requested by the user.
type Direction string

const (
	TopToBottom Direction = "Top-to-Bottom"
	LeftToRight Direction = "Left-to-Right"
)

// Complexity is the level of detail requested by the user.
type Complexity string

const (
	Simple   Complexity = "Simple"
	Medium   Complexity = "Medium"
	Detailed Complexity = "Detailed"
)

// Grammar identifies the diagram language being generated.
type Grammar string

const (
	GrammarMermaid Grammar = "mermaid"
	GrammarD2      Grammar = "d2"
)

// Grammars lists every supported grammar.
var Grammars = []Grammar{GrammarMermaid, GrammarD2}

// ParseGrammar maps a path segment or flag value to a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	switch Grammar(strings.ToLower(strings.TrimSpace(s))) {
	case GrammarMermaid:
		return GrammarMermaid, nil
	case GrammarD2:
		return GrammarD2, nil
	}
	return "", fmt.Errorf("unknown grammar %q: must be mermaid or d2", s)
}

// Request is the body accepted by both generation endpoints.
type Request struct {
	Prompt     string     `json:"prompt"`
	Direction  Direction  `json:"direction"`
	Complexity Complexity `json:"complexity"`
}

// Validate reports the first problem with r, or nil.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.New("prompt must not be empty")
	}
	switch r.Direction {
	case TopToBottom, LeftToRight:
	default:
		return fmt.Errorf("direction must be %q or %q, got %q", TopToBottom, LeftToRight, r.Direction)
	}
	switch r.Complexity {
	case Simple, Medium, Detailed:
	default:
		return fmt.Errorf("complexity must be one of %q, %q, %q, got %q", Simple, Medium, Detailed, r.Complexity)
	}
	return nil
}

// DirectionToken returns the grammar's keyword for d.
func (g Grammar) DirectionToken(d Direction) string {
	horizontal := d == LeftToRight
	switch g {
	case GrammarD2:
		if horizontal {
			return "right"
		}
		return "down"
	default:
		if horizontal {
			return "LR"
		}
		return "TB"
	}
}

// Header returns the line every generated diagram must start with.
func (g Grammar) Header(d Direction) string {
	if g == GrammarD2 {
		return "direction: " + g.DirectionToken(d)
	}
	return "flowchart " + g.DirectionToken(d)
}

// Blocklist returns the substrings stripped from model output. Longer
// fences come first so the bare fence does not leave a language tag behind.
func (g Grammar) Blocklist() []string {
	if g == GrammarD2 {
		return []string{"```d2", "```", "“", "”"}
	}
	return []string{"```mermaid", "```", "“", "”"}
}

// ResponseField is the JSON key under which the code is returned.
func (g Grammar) ResponseField() string {
	if g == GrammarD2 {
		return "d2_code"
	}
	return "mermaid_code"
}

// FileName is the suggested download name for generated code.
func (g Grammar) FileName() string {
	if g == GrammarD2 {
		return "flowchart.d2"
	}
	return "flowchart.mmd"
}
