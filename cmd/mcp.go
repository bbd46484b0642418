package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/flowgen/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing
generate_mermaid_flowchart and generate_d2_flowchart tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		deps, err := createGeneratorFromConfig(cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		mcpserver.Version = Version

		log.WithFields(log.Fields{
			"provider": cfg.Provider,
			"model":    cfg.Model,
		}).Info("flowgen MCP server started on stdio")

		return mcpserver.NewServer(deps.Generator).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
