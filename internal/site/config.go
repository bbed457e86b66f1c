// Package site manages the set of configured WordPress sites: registry
// loading from environment variables, per-site authenticated client
// lifecycle, and site detection from free text.
package site

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// MaxNumberedSites is the highest WORDPRESS_{N}_* slot that is scanned.
const MaxNumberedSites = 10

// Config identifies one remote WordPress site.
type Config struct {
	// ID is the unique registry key, e.g. "site1" or an explicit WORDPRESS_{N}_ID.
	ID string

	// URL is the site's base origin (https://example.com).
	URL string

	// Username and Password are the application-password credentials.
	Username string
	Password string

	// Aliases are alternate names used by site detection.
	Aliases []string

	// Default marks the site used when a tool call names no site.
	Default bool
}

// Registry holds all configured sites. It is immutable after LoadRegistry.
type Registry struct {
	sites     []Config
	byID      map[string]int
	defaultID string

	// Settings shared by all sites.
	CacheTTL       time.Duration
	CacheDir       string
	ParallelSearch bool
	Timeout        time.Duration
}

// DefaultCacheTTL is how long a content-type directory snapshot stays fresh.
const DefaultCacheTTL = time.Hour

// LoadRegistry reads the environment and builds the site registry.
//
// Numbered slots WORDPRESS_1_* .. WORDPRESS_10_* are scanned first; a slot
// counts only when URL, username and password are all present. If no
// numbered slot validates, the legacy WORDPRESS_API_URL / WORDPRESS_USERNAME /
// WORDPRESS_PASSWORD triple is tried as a single site with id "default".
// Zero resolved sites is a fatal configuration error.
func LoadRegistry() (*Registry, error) {
	r := &Registry{
		byID:           make(map[string]int),
		CacheTTL:       DefaultCacheTTL,
		ParallelSearch: true,
		Timeout:        30 * time.Second,
	}

	if t := os.Getenv("WORDPRESS_CACHE_TTL"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			r.CacheTTL = d
		}
	}
	if t := os.Getenv("WORDPRESS_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			r.Timeout = d
		}
	}
	r.CacheDir = os.Getenv("WORDPRESS_CACHE_DIR")
	if os.Getenv("WORDPRESS_PARALLEL_SEARCH") == "false" {
		r.ParallelSearch = false
	}

	defaultClaimed := false
	for n := 1; n <= MaxNumberedSites; n++ {
		prefix := fmt.Sprintf("WORDPRESS_%d_", n)
		url := os.Getenv(prefix + "URL")
		username := os.Getenv(prefix + "USERNAME")
		password := os.Getenv(prefix + "PASSWORD")
		if url == "" || username == "" || password == "" {
			// Partial slots are skipped entirely.
			continue
		}

		cfg := Config{
			ID:       os.Getenv(prefix + "ID"),
			URL:      url,
			Username: username,
			Password: password,
			Aliases:  parseAliases(os.Getenv(prefix + "ALIASES")),
		}
		if cfg.ID == "" {
			cfg.ID = fmt.Sprintf("site%d", n)
		}
		if _, dup := r.byID[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate site id %q in slot %d", cfg.ID, n)
		}

		if os.Getenv(prefix+"DEFAULT") == "true" && !defaultClaimed {
			cfg.Default = true
			defaultClaimed = true
			// An explicit claim displaces the first-slot fallback.
			if r.defaultID != "" {
				r.sites[r.byID[r.defaultID]].Default = false
			}
			r.defaultID = cfg.ID
		} else if len(r.sites) == 0 {
			// First valid slot is the default until a slot claims it explicitly.
			cfg.Default = true
			r.defaultID = cfg.ID
		}

		r.byID[cfg.ID] = len(r.sites)
		r.sites = append(r.sites, cfg)
	}

	if len(r.sites) == 0 {
		url := os.Getenv("WORDPRESS_API_URL")
		username := os.Getenv("WORDPRESS_USERNAME")
		password := os.Getenv("WORDPRESS_PASSWORD")
		if url != "" && username != "" && password != "" {
			cfg := Config{
				ID:       "default",
				URL:      url,
				Username: username,
				Password: password,
				Default:  true,
			}
			r.byID[cfg.ID] = 0
			r.sites = append(r.sites, cfg)
			r.defaultID = cfg.ID
		}
	}

	if len(r.sites) == 0 {
		return nil, errors.New("no WordPress sites configured: set WORDPRESS_1_URL/USERNAME/PASSWORD or the legacy WORDPRESS_API_URL/WORDPRESS_USERNAME/WORDPRESS_PASSWORD")
	}

	return r, nil
}

// Get resolves a site id to its config. An empty id means the default site.
func (r *Registry) Get(siteID string) (Config, error) {
	if siteID == "" {
		if r.defaultID == "" {
			return Config{}, &apierrors.NoDefaultSiteError{}
		}
		siteID = r.defaultID
	}
	idx, ok := r.byID[siteID]
	if !ok {
		return Config{}, &apierrors.UnknownSiteError{SiteID: siteID, Known: r.IDs()}
	}
	return r.sites[idx], nil
}

// All returns the configured sites in load order.
func (r *Registry) All() []Config {
	out := make([]Config, len(r.sites))
	copy(out, r.sites)
	return out
}

// IDs returns the configured site ids in load order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.sites))
	for i, s := range r.sites {
		ids[i] = s.ID
	}
	return ids
}

// DefaultID returns the default site id, or "" if none is configured.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// parseAliases splits a comma-separated alias list, trimming whitespace and
// dropping empties.
func parseAliases(raw string) []string {
	if raw == "" {
		return nil
	}
	var aliases []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	return aliases
}
