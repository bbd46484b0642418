package render

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

func TestGuardMermaid(t *testing.T) {
	assert.NoError(t, Guard(flowchart.GrammarMermaid, "flowchart TB\na[Do]"))
	assert.NoError(t, Guard(flowchart.GrammarMermaid, "  flowchart LR\na[Do]"))

	tests := map[string]string{
		"missing header": "graph TD\na[Do]",
		"fence":          "flowchart TB\n```\na[Do]",
		"syntax error":   "flowchart TB\nSyntax error in graph",
		"empty":          "",
	}
	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			err := Guard(flowchart.GrammarMermaid, code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGuard))
		})
	}
}

func TestGuardMessage(t *testing.T) {
	err := Guard(flowchart.GrammarMermaid, "a --> b")
	require.Error(t, err)
	assert.Equal(t, "Mermaid code must start with `flowchart TB` or `flowchart LR`.", err.Error())
}

func TestGuardD2(t *testing.T) {
	assert.NoError(t, Guard(flowchart.GrammarD2, "direction: down\na -> b"))
	assert.ErrorIs(t, Guard(flowchart.GrammarD2, "a -> b"), ErrGuard)
}

func TestMermaidHTML(t *testing.T) {
	page, err := MermaidHTML("flowchart TB\na[x > y] --> b[Done]")
	require.NoError(t, err)
	s := string(page)
	assert.Contains(t, s, "mermaid@10.9.3/dist/mermaid.min.js")
	assert.Contains(t, s, `<div class="mermaid">flowchart TB`)
	assert.Contains(t, s, "a[x &gt; y]")
	assert.NotContains(t, s, "<script>alert")

	_, err = MermaidHTML("nope")
	assert.ErrorIs(t, err, ErrGuard)
}

func TestMermaidHTMLEscapesMarkup(t *testing.T) {
	page, err := MermaidHTML("flowchart TB\na[<script>alert(1)</script>]")
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<script>alert(1)</script>")
}

func TestD2EmbedURL(t *testing.T) {
	code := "direction: down\nstart -> review: \"Yes & go\""
	u, err := D2EmbedURL(code)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://play.d2lang.com/?embed=1&code="))
	assert.NotContains(t, u, "+")

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, code, parsed.Query().Get("code"))
	assert.Equal(t, "1", parsed.Query().Get("embed"))

	_, err = D2EmbedURL("start -> end")
	assert.ErrorIs(t, err, ErrGuard)
}

func TestNewWidget(t *testing.T) {
	w, err := NewWidget(flowchart.GrammarD2, "direction: right\na -> b")
	require.NoError(t, err)
	assert.Equal(t, "flowchart.d2", w.FileName)
	assert.NotEmpty(t, w.EmbedURL)
	assert.Empty(t, w.HTML)

	w, err = NewWidget(flowchart.GrammarMermaid, "flowchart TB\na[A]")
	require.NoError(t, err)
	assert.Equal(t, "flowchart.mmd", w.FileName)
	assert.NotEmpty(t, w.HTML)

	_, err = NewWidget(flowchart.GrammarMermaid, "a[A]")
	var ge *GuardError
	assert.ErrorAs(t, err, &ge)
}
