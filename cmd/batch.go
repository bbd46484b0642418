package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/client"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/progress"
	"github.com/ziadkadry99/flowgen/internal/render"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate flowcharts for every prompt file matching a glob",
	Long: `Reads each prompt file matched by --prompts, asks the backend for one
flowchart per grammar and writes <name>.mmd and <name>.d2 under --out,
mirroring the directory layout below the glob's base.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("prompts", "prompts/**/*.txt", "doublestar glob of prompt files")
	batchCmd.Flags().StringP("out", "o", "flowcharts", "output directory")
	batchCmd.Flags().StringSlice("grammar", []string{string(flowchart.GrammarMermaid), string(flowchart.GrammarD2)}, "grammars to generate")
	batchCmd.Flags().StringP("direction", "d", string(flowchart.TopToBottom), "Top-to-Bottom (TB) or Left-to-Right (LR)")
	batchCmd.Flags().StringP("complexity", "c", string(flowchart.Medium), "Simple, Medium or Detailed")
	rootCmd.AddCommand(batchCmd)
}

// batchJob is one prompt file rendered in one grammar.
type batchJob struct {
	Source  string
	Name    string
	Grammar flowchart.Grammar
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pattern, _ := cmd.Flags().GetString("prompts")
	outDir, _ := cmd.Flags().GetString("out")
	grammarFlags, _ := cmd.Flags().GetStringSlice("grammar")
	directionFlag, _ := cmd.Flags().GetString("direction")
	complexityFlag, _ := cmd.Flags().GetString("complexity")

	direction, err := parseDirection(directionFlag)
	if err != nil {
		return err
	}
	complexity, err := parseComplexity(complexityFlag)
	if err != nil {
		return err
	}
	var grammars []flowchart.Grammar
	for _, g := range grammarFlags {
		grammar, err := flowchart.ParseGrammar(g)
		if err != nil {
			return err
		}
		grammars = append(grammars, grammar)
	}

	jobs, err := planBatch(pattern, grammars)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no prompt files match %q", pattern)
	}

	backend := createBackendClient(cfg)
	reporter := progress.NewReporter("Generating flowcharts")
	reporter.Start(len(jobs))

	failed := 0
	for i, job := range jobs {
		reporter.Update(i, fmt.Sprintf("%s (%s)", job.Name, job.Grammar))
		if err := runBatchJob(cmd, backend, job, outDir, direction, complexity); err != nil {
			failed++
			log.WithFields(log.Fields{
				"file":    job.Source,
				"grammar": job.Grammar,
			}).WithError(err).Warn("flowchart failed")
		}
		reporter.Update(i+1, fmt.Sprintf("%s (%s)", job.Name, job.Grammar))
	}
	reporter.Finish()

	log.WithFields(log.Fields{
		"generated": len(jobs) - failed,
		"failed":    failed,
		"out":       outDir,
	}).Info("batch complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d flowcharts failed", failed, len(jobs))
	}
	return nil
}

// planBatch expands pattern and pairs every match with every grammar. Job
// names are paths relative to the glob's base, without extension.
func planBatch(pattern string, grammars []flowchart.Grammar) ([]batchJob, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	var jobs []batchJob
	for _, m := range matches {
		rel, err := filepath.Rel(filepath.FromSlash(base), m)
		if err != nil {
			rel = filepath.Base(m)
		}
		name := strings.TrimSuffix(rel, filepath.Ext(rel))
		for _, g := range grammars {
			jobs = append(jobs, batchJob{Source: m, Name: name, Grammar: g})
		}
	}
	return jobs, nil
}

// outputPath is where job's code is written below outDir.
func (j batchJob) outputPath(outDir string) string {
	return filepath.Join(outDir, j.Name+filepath.Ext(j.Grammar.FileName()))
}

func runBatchJob(cmd *cobra.Command, backend *client.Client, job batchJob, outDir string, direction flowchart.Direction, complexity flowchart.Complexity) error {
	data, err := os.ReadFile(job.Source)
	if err != nil {
		return fmt.Errorf("reading prompt: %w", err)
	}
	req := flowchart.Request{
		Prompt:     strings.TrimSpace(string(data)),
		Direction:  direction,
		Complexity: complexity,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	code, err := backend.Generate(cmd.Context(), job.Grammar, req)
	if err != nil {
		return err
	}
	if err := render.Guard(job.Grammar, code); err != nil {
		return err
	}

	path := job.outputPath(outDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, []byte(code+"\n"), 0o644)
}
