package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/flowgen/internal/config"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want flowchart.Direction
	}{
		{"Top-to-Bottom", flowchart.TopToBottom},
		{"tb", flowchart.TopToBottom},
		{"TD", flowchart.TopToBottom},
		{"Left-to-Right", flowchart.LeftToRight},
		{"LR", flowchart.LeftToRight},
	}
	for _, tt := range tests {
		got, err := parseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseDirection("diagonal")
	assert.Error(t, err)
}

func TestParseComplexity(t *testing.T) {
	got, err := parseComplexity("detailed")
	require.NoError(t, err)
	assert.Equal(t, flowchart.Detailed, got)

	_, err = parseComplexity("Extreme")
	assert.Error(t, err)
}

func TestPlanBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "prompts", "finance"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "support.txt"), []byte("ticket"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "finance", "loan.txt"), []byte("loan"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompts", "notes.md"), []byte("skip"), 0o644))

	pattern := filepath.ToSlash(filepath.Join(dir, "prompts")) + "/**/*.txt"
	jobs, err := planBatch(pattern, []flowchart.Grammar{flowchart.GrammarMermaid, flowchart.GrammarD2})
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	names := map[string]int{}
	for _, j := range jobs {
		names[filepath.ToSlash(j.Name)]++
	}
	assert.Equal(t, map[string]int{"support": 2, "finance/loan": 2}, names)

	out := t.TempDir()
	for _, j := range jobs {
		if filepath.ToSlash(j.Name) != "finance/loan" {
			continue
		}
		switch j.Grammar {
		case flowchart.GrammarMermaid:
			assert.Equal(t, filepath.Join(out, "finance", "loan.mmd"), j.outputPath(out))
		case flowchart.GrammarD2:
			assert.Equal(t, filepath.Join(out, "finance", "loan.d2"), j.outputPath(out))
		}
	}
}

func TestPlanBatchNoMatches(t *testing.T) {
	jobs, err := planBatch(filepath.ToSlash(t.TempDir())+"/**/*.txt", []flowchart.Grammar{flowchart.GrammarMermaid})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestCreateGeneratorRequiresCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := config.DefaultConfig()
	cfg.HistoryEnabled = false

	_, err := createGeneratorFromConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestCreateGeneratorWithHistory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	deps, err := createGeneratorFromConfig(cfg)
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Generator)
	assert.NotNil(t, deps.History)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "flowgen.db"))
}

func TestCreateBackendClientTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIURL = "http://backend:8000/"
	c := createBackendClient(cfg)
	assert.Equal(t, "http://backend:8000", c.BaseURL())
}
