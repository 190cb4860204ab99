package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore descends into
// a nested key: RESEARCHSITE_SEARCH__MAX_RESULTS -> search.max_results.
const EnvPrefix = "RESEARCHSITE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (RESEARCHSITE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: RESEARCHSITE_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var tagName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteTitle == "" {
		return fmt.Errorf("site_title is required")
	}

	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
		}
		if u.Host == "" && !strings.HasPrefix(u.Path, "/") {
			return fmt.Errorf("invalid base_url %q: must be an absolute URL or start with /", c.BaseURL)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 0 and 65535", c.Port)
	}

	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}

	if !tagName.MatchString(c.Search.HighlightTag) {
		return fmt.Errorf("invalid search.highlight_tag %q: must be a plain element name", c.Search.HighlightTag)
	}

	s := c.Scroll
	if s.InitialDelay < 0 || s.NavigateDelay < 0 || s.RetryInterval < 0 {
		return fmt.Errorf("scroll delays must be non-negative")
	}

	if s.MaxRetries < 0 {
		return fmt.Errorf("scroll.max_retries must be non-negative")
	}

	if c.NarrowWidth < 0 {
		return fmt.Errorf("narrow_width must be non-negative")
	}

	return nil
}

// BasePath returns the path component of base_url without a trailing
// slash: "https://example.org/docs/" -> "/docs".
func (c *Config) BasePath() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(u.Path, "/")
}
