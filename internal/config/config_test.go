package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected at least one default source")
	}
	if cfg.RefreshInterval == "" {
		t.Error("expected refresh_interval to be set")
	}
	if !cfg.ArxivEnabled() {
		t.Error("expected arXiv enabled by default")
	}
}

func TestRefreshDuration(t *testing.T) {
	cfg := &Config{RefreshInterval: "30m"}
	d := cfg.RefreshDuration()
	if d.Minutes() != 30 {
		t.Errorf("expected 30m, got %v", d)
	}

	cfg.RefreshInterval = "invalid"
	d = cfg.RefreshDuration()
	if d.Hours() != 1 {
		t.Errorf("expected 1h default for invalid interval, got %v", d)
	}
}

func TestRetentionDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantDays int
	}{
		{"90d", 90},
		{"30d", 30},
		{"720h", 30},
		{"", 90},        // default
		{"invalid", 90}, // fallback to default
	}
	for _, tt := range tests {
		cfg := &Config{Retention: tt.input}
		got := cfg.RetentionDuration()
		wantHours := float64(tt.wantDays * 24)
		if got.Hours() != wantHours {
			t.Errorf("RetentionDuration(%q) = %v, want %dd", tt.input, got, tt.wantDays)
		}
	}
}

func TestGetWindowDays(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetWindowDays(); got != 30 {
		t.Errorf("expected default window 30, got %d", got)
	}
	cfg.WindowDays = 7
	if got := cfg.GetWindowDays(); got != 7 {
		t.Errorf("expected window 7, got %d", got)
	}
}

func TestEnabledSources(t *testing.T) {
	cfg := &Config{
		Sources: []Source{
			{Name: "A", Enabled: true},
			{Name: "B", Enabled: false},
			{Name: "C", Enabled: true},
		},
	}
	enabled := cfg.EnabledSources()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled sources, got %d", len(enabled))
	}
	if enabled[0].Name != "A" || enabled[1].Name != "C" {
		t.Errorf("unexpected enabled sources: %v", enabled)
	}
}

func TestSourceNamesIncludesArxiv(t *testing.T) {
	cfg := &Config{
		Sources: []Source{
			{Name: "Nature", Enabled: true},
			{Name: "BMJ", Enabled: false},
		},
		Arxiv: &ArxivConfig{Enabled: true},
	}
	names := cfg.SourceNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
	if names[0] != "Nature" || names[1] != "arXiv" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestArxivQueryDefaults(t *testing.T) {
	cfg := &Config{}
	query, max := cfg.ArxivQuery()
	if query == "" {
		t.Error("expected non-empty default query")
	}
	if max != 50 {
		t.Errorf("expected default max_results 50, got %d", max)
	}

	cfg.Arxiv = &ArxivConfig{Query: "cat:q-bio", MaxResults: 10}
	query, max = cfg.ArxivQuery()
	if query != "cat:q-bio" {
		t.Errorf("expected configured query, got %q", query)
	}
	if max != 10 {
		t.Errorf("expected max_results 10, got %d", max)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `refresh_interval: 2h
sources:
  - name: Test
    type: rss
    url: https://example.com/feed
    enabled: true
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RefreshInterval != "2h" {
		t.Errorf("expected 2h, got %s", cfg.RefreshInterval)
	}
	// First source should be the user-defined one
	if cfg.Sources[0].Name != "Test" {
		t.Errorf("expected first source name Test, got %s", cfg.Sources[0].Name)
	}
	// Default sources should be merged in
	if len(cfg.Sources) <= 1 {
		t.Errorf("expected default sources to be merged, got %d total", len(cfg.Sources))
	}
	// arXiv section comes from defaults when omitted
	if !cfg.ArxivEnabled() {
		t.Error("expected arXiv section merged from defaults")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected default sources when config doesn't exist")
	}
}

func TestMergeDefaults(t *testing.T) {
	cfg := &Config{
		Sources: []Source{
			{Name: "Existing", Type: "rss", URL: "https://example.com/feed", Enabled: true},
			{Name: "Shared", Type: "rss", URL: "https://old.com/feed", Enabled: true},
		},
	}
	defaults := &Config{
		RefreshInterval: "1h",
		Sources: []Source{
			{Name: "Shared", Type: "atom", URL: "https://new.com/feed", Enabled: true},
			{Name: "NewSource", Type: "rss", URL: "https://new-source.com/feed", Enabled: true},
		},
		Arxiv: &ArxivConfig{Enabled: true, MaxResults: 50},
	}
	mergeDefaults(cfg, defaults)

	if len(cfg.Sources) != 3 {
		t.Fatalf("expected 3 sources after merge, got %d", len(cfg.Sources))
	}
	// User-only source preserved
	if cfg.Sources[0].Name != "Existing" {
		t.Errorf("expected first source Existing, got %s", cfg.Sources[0].Name)
	}
	// Shared source URL updated to default
	if cfg.Sources[1].URL != "https://new.com/feed" {
		t.Errorf("expected Shared URL updated, got %s", cfg.Sources[1].URL)
	}
	if cfg.Sources[1].Type != "atom" {
		t.Errorf("expected Shared type updated to atom, got %s", cfg.Sources[1].Type)
	}
	// New default source appended
	if cfg.Sources[2].Name != "NewSource" {
		t.Errorf("expected NewSource appended, got %s", cfg.Sources[2].Name)
	}
	if cfg.RefreshInterval != "1h" {
		t.Errorf("expected refresh_interval filled from defaults, got %q", cfg.RefreshInterval)
	}
	if cfg.Arxiv == nil {
		t.Error("expected arXiv section filled from defaults")
	}
}

func TestValidateMissingName(t *testing.T) {
	cfg := &Config{Sources: []Source{{Type: "rss", URL: "https://example.com"}}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestValidateMissingURL(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test", Type: "rss"}}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestValidateInvalidType(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test", Type: "json", URL: "https://example.com"}}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestValidateInvalidURLScheme(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test", Type: "rss", URL: "file:///etc/passwd"}}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// URL scheme")
	}
}

func TestValidateAcceptsHTTPAndHTTPS(t *testing.T) {
	for _, u := range []string{"https://example.com/feed", "http://example.com/feed"} {
		cfg := &Config{Sources: []Source{{Name: "Test", Type: "rss", URL: u}}}
		if err := validate(cfg); err != nil {
			t.Errorf("unexpected error for %s: %v", u, err)
		}
	}
}

func TestAIKeyFromEnv(t *testing.T) {
	t.Setenv("MEDNEWS_AI_KEY", "env-key")
	cfg := &Config{AI: &AIConfig{Provider: "claude"}}
	if !cfg.AIEnabled() {
		t.Error("expected AI enabled via env var")
	}
	if cfg.AIKey() != "env-key" {
		t.Errorf("expected env key, got %q", cfg.AIKey())
	}
}

func TestAIDisabledWithoutKey(t *testing.T) {
	t.Setenv("MEDNEWS_AI_KEY", "")
	cfg := &Config{AI: &AIConfig{Provider: "claude"}}
	if cfg.AIEnabled() {
		t.Error("expected AI disabled without key")
	}
	if (&Config{}).AIEnabled() {
		t.Error("expected AI disabled without config")
	}
}
