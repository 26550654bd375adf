// Package config handles site and global configuration.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jajnabi/folio/internal/author"
	"github.com/jajnabi/folio/internal/citation"
	"github.com/jajnabi/folio/internal/content"
	"github.com/jajnabi/folio/internal/experience"
)

// Config is a site's folio.yml.
type Config struct {
	Owner     author.Owner `yaml:"owner"`
	Content   Content      `yaml:"content"`
	Citations Citations    `yaml:"citations"`
	Server    Server       `yaml:"server"`
	Fetch     Fetch        `yaml:"fetch"`
	LogLevel  string       `yaml:"log_level,omitempty"`
	Photo     string       `yaml:"photo,omitempty"`
	Title     string       `yaml:"title,omitempty"`
	Browser   string       `yaml:"browser,omitempty"` // "system" or a browser executable
}

// Content locates the site's records. BaseURL, when set, fetches them over
// HTTP instead of from Root.
type Content struct {
	Root          string `yaml:"root"`
	BaseURL       string `yaml:"base_url,omitempty"`
	content.Paths `yaml:",inline"`
}

// Citations selects the inline marker grammar and the unresolved policy.
type Citations struct {
	Grammar    string `yaml:"grammar"`
	Unresolved string `yaml:"unresolved"`
}

// Server configures the preview server.
type Server struct {
	Addr          string   `yaml:"addr"`
	Watch         bool     `yaml:"watch"`
	WatchPatterns []string `yaml:"watch_patterns"`
}

// Fetch configures HTTP content fetching.
type Fetch struct {
	RateLimit float64       `yaml:"rate_limit"`
	Timeout   time.Duration `yaml:"timeout"`
}

const (
	SiteFile = "folio.yml"
	FolioDir = ".folio"
	CacheDir = "cache"
	DBFile   = "folio.db"
)

// Environment variables that override folio.yml.
const (
	EnvContentRoot = "FOLIO_CONTENT_ROOT"
	EnvBaseURL     = "FOLIO_BASE_URL"
	EnvAddr        = "FOLIO_ADDR"
	EnvLogLevel    = "FOLIO_LOG_LEVEL"
)

// ErrSiteNotFound is returned when no folio.yml is found.
var ErrSiteNotFound = errors.New("not in a folio site (no folio.yml found)")

// Default returns the configuration used for fields folio.yml leaves unset.
func Default() *Config {
	return &Config{
		Content: Content{Root: ".", Paths: content.DefaultPaths()},
		Citations: Citations{
			Grammar:    string(citation.GrammarCurly),
			Unresolved: string(experience.Drop),
		},
		Server: Server{
			Addr:          ":8080",
			Watch:         true,
			WatchPatterns: []string{"data/**/*.json", "content/**/*.md"},
		},
		Fetch: Fetch{
			RateLimit: content.DefaultRateLimit,
			Timeout:   content.DefaultTimeout,
		},
		LogLevel: "info",
	}
}

// ConfigPath returns the path to folio.yml from a site root.
func ConfigPath(root string) string {
	return filepath.Join(root, SiteFile)
}

// CachePath returns the path to the cache directory from a site root.
func CachePath(root string) string {
	return filepath.Join(root, FolioDir, CacheDir)
}

// DBPath returns the path to the search database from a site root.
func DBPath(root string) string {
	return filepath.Join(root, FolioDir, CacheDir, DBFile)
}

// IsSite checks if the given directory holds a folio.yml.
func IsSite(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindSite walks up from the given path to find a site root.
func FindSite(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsSite(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrSiteNotFound
		}
		abs = parent
	}
}

// Load reads folio.yml from the site at root, fills unset fields from
// Default, and applies environment overrides. A relative content root is
// resolved against the site root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	cfg.ApplyEnv()

	cfg.Content.Root = ExpandPath(cfg.Content.Root)
	if !filepath.IsAbs(cfg.Content.Root) {
		cfg.Content.Root = filepath.Join(root, cfg.Content.Root)
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields set to empty values in the file.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Content.Root == "" {
		c.Content.Root = d.Content.Root
	}
	p := &c.Content.Paths
	for _, f := range []struct {
		field *string
		def   string
	}{
		{&p.Profile, d.Content.Profile},
		{&p.About, d.Content.About},
		{&p.Interests, d.Content.Interests},
		{&p.Experience, d.Content.Experience},
		{&p.Publications, d.Content.Publications},
		{&c.Citations.Grammar, d.Citations.Grammar},
		{&c.Citations.Unresolved, d.Citations.Unresolved},
		{&c.Server.Addr, d.Server.Addr},
		{&c.LogLevel, d.LogLevel},
	} {
		if strings.TrimSpace(*f.field) == "" {
			*f.field = f.def
		}
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = d.Fetch.Timeout
	}
}

// ApplyEnv overrides fields from FOLIO_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvContentRoot); v != "" {
		c.Content.Root = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Content.BaseURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the owner, grammar, and unresolved policy.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Owner.Surname) == "" {
		return fmt.Errorf("owner: %w", author.ErrNoSurname)
	}
	if _, err := citation.ParseGrammar(c.Citations.Grammar); err != nil {
		return fmt.Errorf("citations.grammar: %w", err)
	}
	if _, err := experience.ParsePolicy(c.Citations.Unresolved); err != nil {
		return fmt.Errorf("citations.unresolved: %w", err)
	}
	for _, pat := range c.Server.WatchPatterns {
		if strings.TrimSpace(pat) == "" {
			return fmt.Errorf("server.watch_patterns: empty pattern")
		}
	}
	return nil
}

// Fetcher returns the content fetcher the configuration selects: HTTP when
// a base URL is set, otherwise the content root directory.
func (c *Config) Fetcher() content.Fetcher {
	if c.Content.BaseURL != "" {
		return content.NewHTTPFetcher(c.Content.BaseURL,
			content.WithHTTPClient(&http.Client{Timeout: c.Fetch.Timeout}),
			content.WithRateLimit(c.Fetch.RateLimit))
	}
	return content.DirFetcher{Root: c.Content.Root}
}

// Save writes the configuration to folio.yml under root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
