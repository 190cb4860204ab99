package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the research docs",
	Long:  `Runs the in-page search over the research content and prints the matching pages and sections.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (defaults to search.max_results)")
	searchCmd.Flags().String("section", "", "restrict results to a section: proxies or mpc")
	searchCmd.Flags().String("snapshot", "", "search a sqlite snapshot instead of the content directory")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	limit, _ := cmd.Flags().GetInt("limit")
	section, _ := cmd.Flags().GetString("section")
	snapshot, _ := cmd.Flags().GetString("snapshot")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if section != "" && section != nav.SectionProxies && section != nav.SectionMPC {
		return fmt.Errorf("unknown section %q: must be %s or %s", section, nav.SectionProxies, nav.SectionMPC)
	}

	corpus, err := loadCorpus(cmd.Context(), cfg, snapshot, logger)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	opts := searchOptions(cfg, logger)
	if limit > 0 {
		opts = append(opts, search.WithLimit(limit))
	}
	engine := search.NewEngine(corpus, opts...)

	var results []search.Result
	if section != "" {
		results = engine.SearchSection(args[0], section)
	} else {
		results = engine.Search(args[0])
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printSearchJSON(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	printSearchTable(out, results)
	return nil
}

type searchResultJSON struct {
	Rank    int    `json:"rank"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Path    string `json:"path"`
	Excerpt string `json:"excerpt"`
}

func printSearchJSON(w io.Writer, results []search.Result) error {
	out := make([]searchResultJSON, 0, len(results))
	for i, r := range results {
		out = append(out, searchResultJSON{
			Rank:    i + 1,
			ID:      r.ID,
			Title:   r.Title,
			Type:    string(r.Type),
			Path:    r.Path,
			Excerpt: truncate.StringWithTail(oneLine(content.PlainText(r.Content)), 200, "..."),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printSearchTable(w io.Writer, results []search.Result) {
	fmt.Fprintf(w, "Found %d results:\n\n", len(results))
	for i, r := range results {
		kind := ""
		if r.Type == content.EntrySection && r.PageTitle != "" {
			kind = fmt.Sprintf(" (in %s)", r.PageTitle)
		}
		fmt.Fprintf(w, "  %d. %s%s\n", i+1, r.Title, kind)
		fmt.Fprintf(w, "     %s\n", r.Path)
		fmt.Fprintf(w, "     %s\n\n", truncate.StringWithTail(oneLine(content.PlainText(r.Content)), 120, "..."))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
