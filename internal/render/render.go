// Package render checks generated diagram code before it reaches a browser
// and produces the embeddable widgets that display it.
package render

import (
	"bytes"
	"errors"
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// MermaidVersion is the mermaid.js release loaded by the preview widget.
const MermaidVersion = "10.9.3"

// D2PlaygroundURL is the embeddable D2 renderer.
const D2PlaygroundURL = "https://play.d2lang.com/"

// ErrGuard is the sentinel wrapped by every GuardError.
var ErrGuard = errors.New("diagram rejected by render guard")

// GuardError carries the user-facing reason a diagram will not be rendered.
type GuardError struct {
	Grammar flowchart.Grammar
	Reason  string
}

func (e *GuardError) Error() string { return e.Reason }

func (e *GuardError) Unwrap() error { return ErrGuard }

// Guard reports whether code is fit to hand to the client-side renderer.
func Guard(g flowchart.Grammar, code string) error {
	trimmed := strings.TrimSpace(code)
	if g == flowchart.GrammarD2 {
		if !strings.HasPrefix(trimmed, "direction:") {
			return &GuardError{Grammar: g, Reason: "D2 code must start with `direction: down` or `direction: right`."}
		}
		return nil
	}
	if !strings.HasPrefix(trimmed, "flowchart") {
		return &GuardError{Grammar: g, Reason: "Mermaid code must start with `flowchart TB` or `flowchart LR`."}
	}
	if strings.Contains(trimmed, "Syntax error") || strings.Contains(trimmed, "```") {
		return &GuardError{Grammar: g, Reason: "MermaidJS returned invalid syntax. Please retry or simplify your input."}
	}
	return nil
}

var mermaidWidget = template.Must(template.New("mermaid").Parse(`<!DOCTYPE html>
<html>
  <head>
    <script src="https://cdn.jsdelivr.net/npm/mermaid@{{.Version}}/dist/mermaid.min.js"></script>
    <script>
      document.addEventListener("DOMContentLoaded", function() {
        mermaid.initialize({
          startOnLoad: true,
          theme: 'default',
          flowchart: { useMaxWidth: true, htmlLabels: true, curve: 'linear' }
        });
      });
    </script>
    <style>.mermaid { width: 100%; overflow: auto; font-family: sans-serif; }</style>
  </head>
  <body><div class="mermaid">{{.Code}}</div></body>
</html>
`))

// MermaidHTML returns a standalone page that renders code with mermaid.js.
// The page is meant for an iframe srcdoc.
func MermaidHTML(code string) (template.HTML, error) {
	if err := Guard(flowchart.GrammarMermaid, code); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err := mermaidWidget.Execute(&buf, struct {
		Version string
		Code    string
	}{MermaidVersion, strings.TrimSpace(code)})
	if err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// D2EmbedURL returns the playground URL that renders code in an iframe.
func D2EmbedURL(code string) (string, error) {
	if err := Guard(flowchart.GrammarD2, code); err != nil {
		return "", err
	}
	encoded := strings.ReplaceAll(url.QueryEscape(code), "+", "%20")
	return D2PlaygroundURL + "?embed=1&code=" + encoded, nil
}

// Widget is the preview payload returned to the browser for one diagram.
type Widget struct {
	Grammar  flowchart.Grammar `json:"grammar"`
	Code     string            `json:"code"`
	HTML     template.HTML     `json:"html,omitempty"`
	EmbedURL string            `json:"embed_url,omitempty"`
	FileName string            `json:"file_name"`
}

// NewWidget guards code and builds the preview for g.
func NewWidget(g flowchart.Grammar, code string) (*Widget, error) {
	w := &Widget{Grammar: g, Code: code, FileName: g.FileName()}
	var err error
	if g == flowchart.GrammarD2 {
		w.EmbedURL, err = D2EmbedURL(code)
	} else {
		w.HTML, err = MermaidHTML(code)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}
