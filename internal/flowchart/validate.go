package flowchart

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"oss.terrastruct.com/d2/d2parser"
)

// ErrInvalidNodeShapes is returned when Mermaid output contains no node
// declared with a recognised shape.
var ErrInvalidNodeShapes = errors.New("Generated Mermaid code has invalid node shapes.")

// ErrInvalidD2 is returned when D2 output does not parse.
var ErrInvalidD2 = errors.New("Generated D2 code has invalid syntax.")

// An identifier immediately followed by one of the five shape brackets:
// ([oval]), [/input/], [\output\], [rect], {decision}.
var mermaidShape = regexp.MustCompile(`\w+\s*(?:\(\[[^\]]+\]\)|\[/[^\]]*?/\]|\[\\[^\]]*?\\\]|\[[^\]]+\]|\{[^}]+\})`)

// D2SyntaxError carries the parser message for rejected D2 output.
type D2SyntaxError struct {
	Detail string
}

func (e *D2SyntaxError) Error() string {
	return fmt.Sprintf("%s %s", ErrInvalidD2.Error(), e.Detail)
}

func (e *D2SyntaxError) Unwrap() error { return ErrInvalidD2 }

// Validate performs the structural acceptance check for g.
func Validate(g Grammar, code string) error {
	if g == GrammarD2 {
		return validateD2(code)
	}
	if !mermaidShape.MatchString(code) {
		return ErrInvalidNodeShapes
	}
	return nil
}

func validateD2(code string) error {
	_, err := d2parser.Parse("flowchart.d2", strings.NewReader(code), &d2parser.ParseOptions{})
	if err != nil {
		return &D2SyntaxError{Detail: err.Error()}
	}
	return nil
}

// HasShapes reports whether Mermaid code declares at least one shaped node.
func HasShapes(code string) bool {
	return mermaidShape.MatchString(code)
}
