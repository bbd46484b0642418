package flowchart

import (
	"regexp"
	"strings"
)

var (
	mermaidHeader = regexp.MustCompile(`^(?:flowchart|graph)\s+(?:TB|TD|BT|RL|LR)\s*;?\s*$`)
	d2Header      = regexp.MustCompile(`^direction\s*:\s*(?:up|down|left|right)\s*;?\s*$`)
)

// StripArtifacts removes every blocklisted substring for g from text.
// This is a heuristic: a fence in the middle of otherwise valid code is
// removed just the same.
func StripArtifacts(g Grammar, text string) string {
	for _, bad := range g.Blocklist() {
		text = strings.ReplaceAll(text, bad, "")
	}
	return text
}

// RepairPrefix makes text start with the header mandated for d. A first
// line that is already a header of the same grammar, for another direction
// or terminated with ';', is replaced rather than duplicated.
func RepairPrefix(g Grammar, d Direction, text string) string {
	header := g.Header(d)
	first, rest, _ := strings.Cut(text, "\n")
	if strings.TrimSpace(first) == header {
		return text
	}

	re := mermaidHeader
	if g == GrammarD2 {
		re = d2Header
	}
	if re.MatchString(strings.TrimSpace(first)) {
		if rest == "" {
			return header
		}
		return header + "\n" + rest
	}
	return header + "\n" + text
}

// Clean applies artifact stripping, trimming, prefix repair and structural
// validation to raw model output.
func Clean(g Grammar, d Direction, raw string) (string, error) {
	code := strings.TrimSpace(StripArtifacts(g, strings.TrimSpace(raw)))
	code = RepairPrefix(g, d, code)
	if err := Validate(g, code); err != nil {
		return "", err
	}
	return code, nil
}
