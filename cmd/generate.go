package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
	"github.com/ziadkadry99/flowgen/internal/progress"
	"github.com/ziadkadry99/flowgen/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate one flowchart through the backend API",
	Long: `Sends the prompt to the backend at API_URL, checks the returned code
with the rendering guard and prints it, or writes it to --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("grammar", "g", string(flowchart.GrammarMermaid), "diagram grammar: mermaid or d2")
	generateCmd.Flags().StringP("direction", "d", string(flowchart.TopToBottom), "Top-to-Bottom (TB) or Left-to-Right (LR)")
	generateCmd.Flags().StringP("complexity", "c", string(flowchart.Medium), "Simple, Medium or Detailed")
	generateCmd.Flags().StringP("out", "o", "", "write the code to this file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req, grammar, err := requestFromFlags(cmd, strings.Join(args, " "))
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	backend := createBackendClient(cfg)
	code, err := generateWithSpinner(cmd.Context(), func(ctx context.Context) (string, error) {
		return backend.Generate(ctx, grammar, req)
	})
	if err != nil {
		return err
	}

	if err := render.Guard(grammar, code); err != nil {
		fmt.Fprintln(os.Stderr, code)
		return err
	}

	if out == "" {
		fmt.Println(code)
		return nil
	}
	if err := os.WriteFile(out, []byte(code+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Flowchart written to %s\n", out)
	return nil
}

// requestFromFlags builds the request and grammar from the shared flags.
func requestFromFlags(cmd *cobra.Command, prompt string) (flowchart.Request, flowchart.Grammar, error) {
	grammarFlag, _ := cmd.Flags().GetString("grammar")
	directionFlag, _ := cmd.Flags().GetString("direction")
	complexityFlag, _ := cmd.Flags().GetString("complexity")

	grammar, err := flowchart.ParseGrammar(grammarFlag)
	if err != nil {
		return flowchart.Request{}, "", err
	}
	direction, err := parseDirection(directionFlag)
	if err != nil {
		return flowchart.Request{}, "", err
	}
	complexity, err := parseComplexity(complexityFlag)
	if err != nil {
		return flowchart.Request{}, "", err
	}

	req := flowchart.Request{Prompt: prompt, Direction: direction, Complexity: complexity}
	if err := req.Validate(); err != nil {
		return flowchart.Request{}, "", err
	}
	return req, grammar, nil
}

// generateWithSpinner runs fn while a spinner animates on stderr.
func generateWithSpinner(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spinner := progress.StartSpinner("Generating flowchart...")
	defer spinner.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				spinner.Tick()
			}
		}
	}()

	return fn(ctx)
}
