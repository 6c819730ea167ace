package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/site"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the documentation site for the source tree",
	Long: `Walks the configured source directory and writes files.html, index.html
(from the README), one highlighted listing per file and the static assets
into the site directory.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("output", "", "override the site directory")
	generateCmd.Flags().Int("level", 0, "initial expansion level of files.html (overrides config)")
	generateCmd.Flags().Bool("quiet", false, "suppress progress output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.SiteDir = out
	}
	if level, _ := cmd.Flags().GetInt("level"); level > 0 {
		cfg.ExpansionLevel = level
	}

	var rep progress.Reporter = progress.Discard{}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		rep = progress.New(os.Stderr)
	}

	debugf("Source: %s\nSite: %s\nInclude: %v\nExclude: %v\n", cfg.SourceDir, cfg.SiteDir, cfg.Include, cfg.Exclude)

	stats, err := site.NewGenerator(cfg, rep).Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Site generated: %s (%d pages, %d source files) in %s\n",
		cfg.SiteDir, stats.Pages, stats.Files, time.Since(start).Round(time.Millisecond))
	return nil
}
