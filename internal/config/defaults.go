package config

import "time"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".researchsite.yml"

// DefaultExcludes are glob patterns excluded from content discovery by
// default.
var DefaultExcludes = []string{
	"**/README.md",
	"**/drafts/**",
	"node_modules/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteTitle:    "yAcademy Research",
		ContentDir:   "content",
		OutputDir:    "site",
		SnapshotPath: ".researchsite/site.db",
		Port:         8080,
		Include:      []string{"**/*.md"},
		Exclude:      append([]string(nil), DefaultExcludes...),
		Search: SearchConfig{
			MaxResults:   10,
			HighlightTag: "mark",
		},
		Scroll: ScrollConfig{
			InitialDelay:  500 * time.Millisecond,
			NavigateDelay: 100 * time.Millisecond,
			RetryInterval: 200 * time.Millisecond,
			MaxRetries:    10,
			HeaderOffset:  100,
		},
		NarrowWidth: 100,
	}
}
