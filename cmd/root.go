package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	jsonhandler "github.com/apex/log/handlers/json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/flowgen/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flowgen",
	Short: "Turn process descriptions into Mermaid and D2 flowcharts",
	Long: `flowgen asks an LLM to describe a process as a flowchart, cleans and
validates the answer, and serves the result as Mermaid or D2 code. It runs
as a backend API, a browser frontend, an MCP server for AI agents, or a
plain command-line generator.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs the apex/log handler and level chosen by cfg.
// Logs always go to stderr so stdout stays free for generated code and MCP.
func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == config.LogFormatJSON {
		log.SetHandler(jsonhandler.New(os.Stderr))
	} else {
		log.SetHandler(cli.New(os.Stderr))
	}

	level := strings.ToLower(cfg.LogLevel)
	if verbose {
		level = "debug"
	}
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
