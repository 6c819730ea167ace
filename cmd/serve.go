package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/server"
	"github.com/ziadkadry99/docview/internal/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated site with per-visitor toggle state",
	Long: `Starts an HTTP server over the site directory. Every visitor gets a
session whose folder, section and fold state is kept on the server and
changed through POST /api/view/{page} or the page's WebSocket.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	serveCmd.Flags().Bool("no-watch", false, "do not reload pages when the site changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireSite(cfg); err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	watch := cfg.Server.Watch
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		watch = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views := view.NewRegistry(cfg.SiteDir, cfg.ExpansionLevel)
	srv := server.New(server.Config{
		Port:        cfg.Server.Port,
		SiteDir:     cfg.SiteDir,
		AllowAll:    cfg.Server.AllowAllOrigins,
		SessionIdle: cfg.SessionIdleTimeout(),
		Watch:       watch,
	}, views)

	url := fmt.Sprintf("http://localhost:%d/files.html", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "Serving %s at %s (press Ctrl+C to stop)\n", cfg.SiteDir, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			openBrowser(url)
		}()
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
