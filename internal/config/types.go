package config

import "time"

// Config is the top-level researchsite configuration, corresponding to
// .researchsite.yml.
type Config struct {
	SiteTitle    string       `yaml:"site_title" koanf:"site_title"`
	BaseURL      string       `yaml:"base_url" koanf:"base_url"`
	ContentDir   string       `yaml:"content_dir" koanf:"content_dir"`
	OutputDir    string       `yaml:"output_dir" koanf:"output_dir"`
	SnapshotPath string       `yaml:"snapshot_path" koanf:"snapshot_path"`
	Port         int          `yaml:"port" koanf:"port"`
	Logo         string       `yaml:"logo" koanf:"logo"`
	Include      []string     `yaml:"include" koanf:"include"`
	Exclude      []string     `yaml:"exclude" koanf:"exclude"`
	Search       SearchConfig `yaml:"search" koanf:"search"`
	Scroll       ScrollConfig `yaml:"scroll" koanf:"scroll"`
	NarrowWidth  int          `yaml:"narrow_width" koanf:"narrow_width"`
}

// SearchConfig tunes the search engine.
type SearchConfig struct {
	MaxResults   int    `yaml:"max_results" koanf:"max_results"`
	HighlightTag string `yaml:"highlight_tag" koanf:"highlight_tag"`
}

// ScrollConfig holds the hash-anchor scroll timings.
type ScrollConfig struct {
	InitialDelay  time.Duration `yaml:"initial_delay" koanf:"initial_delay"`
	NavigateDelay time.Duration `yaml:"navigate_delay" koanf:"navigate_delay"`
	RetryInterval time.Duration `yaml:"retry_interval" koanf:"retry_interval"`
	MaxRetries    int           `yaml:"max_retries" koanf:"max_retries"`
	HeaderOffset  int           `yaml:"header_offset" koanf:"header_offset"`
}
