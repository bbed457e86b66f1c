package typecache

import (
	"context"
	"fmt"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

// builtinTaxonomyEndpoints resolve without a discovery lookup.
var builtinTaxonomyEndpoints = map[string]string{
	"category": "categories",
	"post_tag": "tags",
}

// GetTaxonomies returns the taxonomy directory for a site. Taxonomies are
// cached in memory with the same freshness TTL as content types; they are
// small and cheap to re-fetch, so there is no durable tier for them.
func (c *Cache) GetTaxonomies(ctx context.Context, siteID string, forceRefresh bool) (map[string]wordpress.Taxonomy, error) {
	cfg, err := c.manager.Registry().Get(siteID)
	if err != nil {
		return nil, err
	}
	id := cfg.ID

	if !forceRefresh {
		c.mu.Lock()
		snap, ok := c.taxonomies[id]
		c.mu.Unlock()
		if ok && time.Since(snap.fetchedAt) < c.ttl {
			return snap.dir, nil
		}
	}

	client, err := c.manager.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	var raw map[string]wordpress.Taxonomy
	if err := client.GetJSON(ctx, "taxonomies", nil, &raw); err != nil {
		return nil, fmt.Errorf("taxonomy discovery failed for site %q: %w", siteID, err)
	}
	for slug, tax := range raw {
		if tax.Slug == "" {
			tax.Slug = slug
			raw[slug] = tax
		}
	}

	c.mu.Lock()
	c.taxonomies[id] = taxonomySnapshot{dir: raw, fetchedAt: time.Now()}
	c.mu.Unlock()
	return raw, nil
}

// TaxonomyEndpoint resolves a taxonomy slug to its REST base path segment,
// with the same identity fallback policy as content types.
func (c *Cache) TaxonomyEndpoint(ctx context.Context, siteID, slug string) (string, error) {
	if base, ok := builtinTaxonomyEndpoints[slug]; ok {
		return base, nil
	}

	taxonomies, err := c.GetTaxonomies(ctx, siteID, false)
	if err != nil {
		return "", err
	}
	if tax, ok := taxonomies[slug]; ok && tax.RestBase != "" {
		return tax.RestBase, nil
	}

	c.logger.Debug("Taxonomy not in directory, using slug as endpoint", "site", siteID, "taxonomy", slug)
	return slug, nil
}
