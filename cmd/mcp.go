package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/docview/internal/mcp"
	"github.com/ziadkadry99/docview/internal/view"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio whose tools expand, collapse and fold the pages of the generated site.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireSite(cfg); err != nil {
			return err
		}

		mcpserver.Version = Version
		fmt.Fprintf(os.Stderr, "docview MCP server started on stdio (site=%s)\n", cfg.SiteDir)

		srv := mcpserver.NewServer(view.NewRegistry(cfg.SiteDir, cfg.ExpansionLevel))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
