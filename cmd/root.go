package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docview",
	Short: "Browsable source documentation with collapsible trees, sections and folds",
	Long: `docview renders a source tree into a static documentation site: a
collapsible directory table, highlighted listings with foldable blocks, and
member tables with inherited groups. Pages can be browsed statically,
served with per-visitor toggle state, or driven by AI agents over MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docview.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
