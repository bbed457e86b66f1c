// Package typecache caches the content-type directory of each configured
// WordPress site. The directory maps content-type slugs to their REST
// endpoint metadata and is the authority for routing "content_type"
// arguments to concrete endpoints.
//
// Two cache tiers sit in front of the network: an in-memory snapshot per
// site and a durable JSON file per site. Memory is checked first, then disk,
// then the type-discovery endpoint. Durable-tier failures are logged and
// treated as misses; they never abort a lookup.
package typecache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/infra"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
	"github.com/olgasafonova/wordpress-mcp-server/metrics"
)

// Directory maps content-type slug to its metadata.
type Directory map[string]wordpress.ContentType

// builtinEndpoints resolve without any directory lookup, ever.
var builtinEndpoints = map[string]string{
	wordpress.TypePost: "posts",
	wordpress.TypePage: "pages",
}

type snapshot struct {
	dir       Directory
	fetchedAt time.Time
}

// Cache is the two-tier content-type directory cache.
type Cache struct {
	manager *site.Manager
	logger  *slog.Logger
	ttl     time.Duration
	baseDir string // durable cache directory; "" disables the disk tier

	mu         sync.Mutex
	memory     map[string]snapshot // keyed by canonical site id
	taxonomies map[string]taxonomySnapshot

	dedup *infra.Deduplicator[Directory]
}

type taxonomySnapshot struct {
	dir       map[string]wordpress.Taxonomy
	fetchedAt time.Time
}

// New creates a Cache over the manager's sites. The freshness TTL and the
// durable directory location come from the registry settings; when no
// directory is configured the user cache dir is used, and if that is
// unavailable the disk tier is disabled.
func New(manager *site.Manager, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	reg := manager.Registry()

	baseDir := reg.CacheDir
	if baseDir == "" {
		if userCache, err := os.UserCacheDir(); err == nil {
			baseDir = filepath.Join(userCache, "wordpress-mcp")
		} else {
			logger.Warn("No durable cache location available, disk tier disabled", "error", err)
		}
	}

	return &Cache{
		manager:    manager,
		logger:     logger,
		ttl:        reg.CacheTTL,
		baseDir:    baseDir,
		memory:     make(map[string]snapshot),
		taxonomies: make(map[string]taxonomySnapshot),
		dedup:      infra.NewDeduplicator[Directory](),
	}
}

// GetContentTypes returns the content-type directory for a site, refreshing
// from the network when both cache tiers are stale or forceRefresh is set.
func (c *Cache) GetContentTypes(ctx context.Context, siteID string, forceRefresh bool) (Directory, error) {
	cfg, err := c.manager.Registry().Get(siteID)
	if err != nil {
		return nil, err
	}
	id := cfg.ID

	if !forceRefresh {
		c.mu.Lock()
		snap, ok := c.memory[id]
		c.mu.Unlock()
		if ok && time.Since(snap.fetchedAt) < c.ttl {
			metrics.RecordCacheAccess("memory", true)
			return snap.dir, nil
		}

		if dir, fetchedAt, ok := c.loadDurable(id); ok && time.Since(fetchedAt) < c.ttl {
			metrics.RecordCacheAccess("disk", true)
			c.mu.Lock()
			c.memory[id] = snapshot{dir: dir, fetchedAt: fetchedAt}
			c.mu.Unlock()
			return dir, nil
		}
		metrics.RecordCacheAccess("", false)
	}

	// Concurrent refreshes for the same site coalesce into one fetch.
	dir, shared, err := c.dedup.Do(ctx, id, func() (Directory, error) {
		return c.fetch(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		return dir, nil
	}

	now := time.Now()
	c.mu.Lock()
	c.memory[id] = snapshot{dir: dir, fetchedAt: now}
	c.mu.Unlock()
	c.storeDurable(id, dir, now)
	return dir, nil
}

// Endpoint resolves a content-type slug to its REST base path segment.
// The built-in post and page types never touch the cache or the network.
// A slug absent from the directory resolves to itself: most custom types
// mount their endpoint under their own slug, and a guess the remote can
// reject beats a hard failure here.
func (c *Cache) Endpoint(ctx context.Context, siteID, slug string) (string, error) {
	if base, ok := builtinEndpoints[slug]; ok {
		return base, nil
	}

	dir, err := c.GetContentTypes(ctx, siteID, false)
	if err != nil {
		return "", err
	}
	if ct, ok := dir[slug]; ok && ct.RestBase != "" {
		return ct.RestBase, nil
	}

	c.logger.Debug("Content type not in directory, using slug as endpoint", "site", siteID, "content_type", slug)
	return slug, nil
}

// fetch pulls the directory from the site's type-discovery endpoint.
func (c *Cache) fetch(ctx context.Context, siteID string) (Directory, error) {
	client, err := c.manager.GetClient(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var raw map[string]wordpress.ContentType
	if err := client.GetJSON(ctx, "types", nil, &raw); err != nil {
		metrics.RecordDirectoryRefresh(siteID, false)
		return nil, fmt.Errorf("content-type discovery failed for site %q: %w", siteID, err)
	}
	metrics.RecordDirectoryRefresh(siteID, true)

	dir := make(Directory, len(raw))
	for slug, ct := range raw {
		if ct.Slug == "" {
			ct.Slug = slug
		}
		dir[slug] = ct
	}

	c.logger.Info("Content-type directory refreshed", "site", siteID, "types", len(dir))
	return dir, nil
}

// durableFile is the on-disk snapshot format.
type durableFile struct {
	Data      Directory `json:"data"`
	Timestamp int64     `json:"timestamp"` // epoch millis
}

func (c *Cache) durablePath(siteID string) string {
	// Site ids come from configuration, but keep the filename safe anyway.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, siteID)
	return filepath.Join(c.baseDir, "types-"+safe+".json")
}

// loadDurable reads a site's snapshot from disk. Any failure is a miss.
func (c *Cache) loadDurable(siteID string) (Directory, time.Time, bool) {
	if c.baseDir == "" {
		return nil, time.Time{}, false
	}

	data, err := os.ReadFile(c.durablePath(siteID))
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("Failed to read durable type cache", "site", siteID, "error", err)
		}
		return nil, time.Time{}, false
	}

	var file durableFile
	if err := json.Unmarshal(data, &file); err != nil {
		c.logger.Warn("Corrupt durable type cache, ignoring", "site", siteID, "error", err)
		return nil, time.Time{}, false
	}
	if file.Data == nil {
		return nil, time.Time{}, false
	}
	return file.Data, time.UnixMilli(file.Timestamp), true
}

// storeDurable writes a site's snapshot to disk. Failure is logged only.
func (c *Cache) storeDurable(siteID string, dir Directory, fetchedAt time.Time) {
	if c.baseDir == "" {
		return
	}
	if err := os.MkdirAll(c.baseDir, 0o755); err != nil {
		c.logger.Warn("Failed to create durable cache directory", "path", c.baseDir, "error", err)
		return
	}

	data, err := json.Marshal(durableFile{Data: dir, Timestamp: fetchedAt.UnixMilli()})
	if err != nil {
		c.logger.Warn("Failed to encode durable type cache", "site", siteID, "error", err)
		return
	}
	if err := os.WriteFile(c.durablePath(siteID), data, 0o644); err != nil {
		c.logger.Warn("Failed to write durable type cache", "site", siteID, "error", err)
	}
}
