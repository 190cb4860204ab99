package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yacademy/researchsite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "researchsite",
	Short: "Build, serve and browse the yAcademy research docs",
	Long: `researchsite renders markdown research articles into a navigable
documentation site with a sidebar, in-page search and anchor scrolling.
It can write a static site, serve it with a live search API, expose it
to AI agents over MCP, or open it in a terminal reader.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
