package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/tui"
	"github.com/yacademy/researchsite/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse [page-id]",
	Short: "Read the research docs in the terminal",
	Long: `Opens a terminal reader with the sidebar, search and table of contents.
Pass --hash to jump to an anchor the way a #fragment link does in the
browser. Anchors on other pages of the section are followed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("section", nav.SectionProxies, "section to open: proxies or mpc")
	browseCmd.Flags().String("hash", "", "anchor to scroll to once the page is shown")
	browseCmd.Flags().String("snapshot", "", "read from a sqlite snapshot instead of the content directory")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	section, _ := cmd.Flags().GetString("section")
	hash, _ := cmd.Flags().GetString("hash")
	snapshot, _ := cmd.Flags().GetString("snapshot")
	if section != nav.SectionProxies && section != nav.SectionMPC {
		return fmt.Errorf("unknown section %q: must be %s or %s", section, nav.SectionProxies, nav.SectionMPC)
	}

	id := nav.HomeID
	if len(args) == 1 {
		id = args[0]
	}

	corpus := loadCorpusOrWarn(cmd.Context(), cfg, snapshot, logger)
	engine := search.NewEngine(corpus, searchOptions(cfg, logger)...)
	sec := view.NewSection(section, corpus, engine)

	opts := tui.DefaultOptions()
	opts.Logger = logger
	if cfg.NarrowWidth > 0 {
		opts.NarrowWidth = cfg.NarrowWidth
	}
	// Pixel header offsets from the config have no meaning in a terminal.
	scroll := scrollConfig(cfg)
	scroll.HeaderOffset = opts.Scroll.HeaderOffset
	opts.Scroll = scroll

	p := tea.NewProgram(tui.New(sec, id, hash, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running reader: %w", err)
	}
	return nil
}
