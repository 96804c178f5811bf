package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Source struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type ArxivConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Query      string `yaml:"query"`
	MaxResults int    `yaml:"max_results"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "claude" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type Config struct {
	RefreshInterval string       `yaml:"refresh_interval"`
	Retention       string       `yaml:"retention"`
	WindowDays      int          `yaml:"window_days,omitempty"`
	DefaultTopic    string       `yaml:"topic,omitempty"`
	Sources         []Source     `yaml:"sources"`
	Arxiv           *ArxivConfig `yaml:"arxiv,omitempty"`
	AI              *AIConfig    `yaml:"ai,omitempty"`
}

// AIEnabled returns true if AI is configured with a valid API key.
func (c *Config) AIEnabled() bool {
	if c.AI == nil {
		return false
	}
	key := c.AI.APIKey
	if key == "" {
		key = os.Getenv("MEDNEWS_AI_KEY")
	}
	return key != ""
}

// AIKey returns the resolved API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("MEDNEWS_AI_KEY")
}

// RefreshDuration returns the cache TTL. The original dashboard cached
// fetch results for one hour, which stays the default here.
func (c *Config) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 90 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// GetWindowDays returns how many days of articles to show, defaulting to 30.
func (c *Config) GetWindowDays() int {
	if c.WindowDays <= 0 {
		return 30
	}
	return c.WindowDays
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) SourceNames() []string {
	var names []string
	for _, s := range c.EnabledSources() {
		names = append(names, s.Name)
	}
	if c.ArxivEnabled() {
		names = append(names, "arXiv")
	}
	return names
}

// ArxivEnabled reports whether the arXiv fetcher should run.
func (c *Config) ArxivEnabled() bool {
	return c.Arxiv != nil && c.Arxiv.Enabled
}

// ArxivQuery returns the configured search query with defaults applied.
func (c *Config) ArxivQuery() (query string, maxResults int) {
	query = "(cat:cs.AI OR cat:cs.LG OR cat:stat.ML) AND (medicine OR healthcare OR clinical OR medical)"
	maxResults = 50
	if c.Arxiv == nil {
		return query, maxResults
	}
	if c.Arxiv.Query != "" {
		query = c.Arxiv.Query
	}
	if c.Arxiv.MaxResults > 0 {
		maxResults = c.Arxiv.MaxResults
	}
	return query, maxResults
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "mednews", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "mednews", "mednews.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	mergeDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// mergeDefaults fills gaps in a user config from the embedded defaults:
// sources are matched by name (default URL/type win so stale feed URLs heal
// on upgrade), new default sources are appended, and the arXiv section is
// taken from defaults when the user omits it.
func mergeDefaults(cfg, defaults *Config) {
	byName := make(map[string]int, len(cfg.Sources))
	for i, s := range cfg.Sources {
		byName[s.Name] = i
	}
	for _, d := range defaults.Sources {
		if i, ok := byName[d.Name]; ok {
			cfg.Sources[i].URL = d.URL
			cfg.Sources[i].Type = d.Type
			continue
		}
		cfg.Sources = append(cfg.Sources, d)
	}

	if cfg.RefreshInterval == "" {
		cfg.RefreshInterval = defaults.RefreshInterval
	}
	if cfg.Retention == "" {
		cfg.Retention = defaults.Retention
	}
	if cfg.WindowDays == 0 {
		cfg.WindowDays = defaults.WindowDays
	}
	if cfg.Arxiv == nil {
		cfg.Arxiv = defaults.Arxiv
	}
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{"rss": true, "atom": true}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if !validTypes[s.Type] {
			return fmt.Errorf("source %q: unknown type %q (valid: rss, atom)", s.Name, s.Type)
		}
	}
	if cfg.Arxiv != nil && cfg.Arxiv.MaxResults < 0 {
		return fmt.Errorf("arxiv: max_results must be positive, got %d", cfg.Arxiv.MaxResults)
	}
	return nil
}
