package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/diagrams"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the flowchart symbol guide",
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, _ := cmd.Flags().GetString("sample")

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tSHAPE\tMERMAID SYNTAX")
		for _, row := range diagrams.Legend() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", row.Symbol, row.Shape, row.Syntax)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if sample == "" {
			return nil
		}
		grammar, err := flowchart.ParseGrammar(sample)
		if err != nil {
			return err
		}
		chart := diagrams.SampleLegendFlow()
		fmt.Println()
		if grammar == flowchart.GrammarD2 {
			fmt.Println(chart.D2())
		} else {
			fmt.Println(chart.Mermaid())
		}
		return nil
	},
}

func init() {
	legendCmd.Flags().String("sample", "", "also print the sample flowchart in this grammar (mermaid or d2)")
	rootCmd.AddCommand(legendCmd)
}
