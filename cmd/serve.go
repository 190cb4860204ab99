package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/server"
	"github.com/yacademy/researchsite/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research site with a live search API",
	Long: `Starts an HTTP server that renders pages on request and answers search
queries over JSON and websocket. With --watch, edits to the content
directory are picked up without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to the configured port)")
	serveCmd.Flags().String("snapshot", "", "start from a sqlite snapshot instead of the content directory")
	serveCmd.Flags().Bool("watch", false, "reload content when markdown files change")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Port
	}
	snapshot, _ := cmd.Flags().GetString("snapshot")
	watch, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")
	if watch && snapshot != "" {
		return errors.New("--watch reads the content directory and cannot be combined with --snapshot")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	corpus := loadCorpusOrWarn(ctx, cfg, snapshot, logger)

	srv, err := server.New(server.Config{
		Port:     port,
		AllowAll: true,
		Render:   renderOptions(cfg),
	}, corpus, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if watch {
		watcher := content.NewWatcher(newLoader(cfg, logger), srv.Swap, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("content watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Fprintf(os.Stderr, "researchsite %s serving at %s (press Ctrl+C to stop)\n", Version, url)
	if open {
		go site.OpenBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
