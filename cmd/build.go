package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/progress"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static research site",
	Long: `Renders every page of the proxies and MPC sections into a self-contained
static site with a client-side search index.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	buildCmd.Flags().Int("port", 0, "port for the local server (defaults to the configured port)")
	buildCmd.Flags().Bool("open", false, "open browser automatically when serving")
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	corpus, err := newLoader(cfg, logger).Load(cmd.Context())
	switch {
	case errors.Is(err, content.ErrNoContent):
		logger.Warn("no research content found, building built-in pages only", zap.String("dir", cfg.ContentDir))
		corpus = nil
	case err != nil:
		return fmt.Errorf("loading content: %w", err)
	}

	renderer, err := site.NewRenderer(renderOptions(cfg))
	if err != nil {
		return err
	}
	gen := site.NewGenerator(corpus, outputDir, renderer, logger)
	gen.Engine = search.NewEngine(corpus, searchOptions(cfg, logger)...)
	gen.Reporter = progress.NewReporter("Rendering pages")

	pageCount, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Port
	}
	open, _ := cmd.Flags().GetBool("open")
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		abs = outputDir
	}
	if err := site.Serve(abs, cfg.BasePath(), port, open); err != nil {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
