package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/yacademy/researchsite/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing research search and page tools to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		snapshot, _ := cmd.Flags().GetString("snapshot")
		corpus := loadCorpusOrWarn(cmd.Context(), cfg, snapshot, logger)

		mcpserver.Version = Version

		pages := 0
		if corpus != nil {
			pages = len(corpus.Records)
		}
		fmt.Fprintf(os.Stderr, "researchsite MCP server started on stdio (pages=%d)\n", pages)

		srv := mcpserver.NewServer(corpus, logger, searchOptions(cfg, logger)...)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().String("snapshot", "", "start from a sqlite snapshot instead of the content directory")
	rootCmd.AddCommand(mcpCmd)
}
