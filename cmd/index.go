package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/db"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the research content into a sqlite snapshot",
	Long: `Renders the markdown content and stores pages, their sections and the
search index in a sqlite snapshot that serve and mcp can start from.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("snapshot", "", "snapshot path (defaults to snapshot_path from config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	path, _ := cmd.Flags().GetString("snapshot")
	if path == "" {
		path = cfg.SnapshotPath
	}

	corpus, err := newLoader(cfg, logger).Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := content.NewStore(database).Save(cmd.Context(), corpus); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	logger.Info("snapshot written", zap.String("path", path), zap.Int("pages", len(corpus.Records)))
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d pages (%d search entries) into %s\n",
		len(corpus.Records), len(corpus.SearchIndex), path)
	return nil
}
