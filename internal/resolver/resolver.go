// Package resolver locates content by slug or URL when the content type is
// unknown, searching one or more candidate types and using URL-path
// heuristics to order the candidates.
package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/typecache"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
	"github.com/olgasafonova/wordpress-mcp-server/metrics"
)

// ResolvedContent is the result of a cross-type search: the raw content
// record and the content type it was found under.
type ResolvedContent struct {
	Content     json.RawMessage `json:"content"`
	ContentType string          `json:"content_type"`
}

// ParsedURL is the slug and path context extracted from a content URL.
type ParsedURL struct {
	Slug      string   `json:"slug"`
	PathHints []string `json:"path_hints,omitempty"`
}

// pathHintTypes maps known URL path segments to the content-type slugs they
// suggest. Matched types are searched before the post/page fallbacks.
var pathHintTypes = map[string][]string{
	"documentation": {"docs", "documentation"},
	"docs":          {"docs", "documentation"},
	"products":      {"product"},
	"product":       {"product"},
	"shop":          {"product"},
	"blog":          {"post"},
	"news":          {"post"},
	"articles":      {"post"},
	"team":          {"team"},
	"people":        {"team"},
	"events":        {"event"},
	"event":         {"event"},
	"portfolio":     {"portfolio"},
}

// Resolver searches content types for a slug, in parallel when enabled.
type Resolver struct {
	manager  *site.Manager
	types    *typecache.Cache
	logger   *slog.Logger
	parallel bool
}

// New creates a Resolver. The parallel-search toggle comes from the registry
// settings (WORDPRESS_PARALLEL_SEARCH, default enabled).
func New(manager *site.Manager, types *typecache.Cache, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		manager:  manager,
		types:    types,
		logger:   logger,
		parallel: manager.Registry().ParallelSearch,
	}
}

// ParseURL extracts the slug (last path segment) and the lowercased
// preceding segments from a content URL. Malformed input yields the zero
// value rather than an error.
func ParseURL(raw string) ParsedURL {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ParsedURL{}
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return ParsedURL{}
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return ParsedURL{}
	}

	parsed := ParsedURL{Slug: segments[len(segments)-1]}
	for _, hint := range segments[:len(segments)-1] {
		parsed.PathHints = append(parsed.PathHints, strings.ToLower(hint))
	}
	return parsed
}

// FindContentAcrossTypes searches candidate content types for an exact slug
// match. An empty candidate list expands to every discovered type except
// attachments and reusable blocks. A miss is a nil result, not an error.
//
// With multiple candidates and parallel search enabled, the per-type lookups
// run concurrently but the winner is always the first candidate in list
// order with a hit — completion order affects latency only.
func (r *Resolver) FindContentAcrossTypes(ctx context.Context, siteID, slug string, candidates []string) (*ResolvedContent, error) {
	if slug == "" {
		return nil, apierrors.NewValidationError("slug", "", "slug must not be empty")
	}

	if len(candidates) == 0 {
		dir, err := r.types.GetContentTypes(ctx, siteID, false)
		if err != nil {
			return nil, err
		}
		for typeSlug := range dir {
			if typeSlug == wordpress.TypeAttachment || typeSlug == wordpress.TypeBlock {
				continue
			}
			candidates = append(candidates, typeSlug)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var hit *ResolvedContent
	var err error
	if r.parallel && len(candidates) > 1 {
		hit, err = r.searchParallel(ctx, siteID, slug, candidates)
	} else {
		hit, err = r.searchSequential(ctx, siteID, slug, candidates)
	}
	switch {
	case err != nil:
		metrics.SlugSearches.WithLabelValues("error").Inc()
	case hit != nil:
		metrics.SlugSearches.WithLabelValues("found").Inc()
	default:
		metrics.SlugSearches.WithLabelValues("not_found").Inc()
	}
	return hit, err
}

func (r *Resolver) searchSequential(ctx context.Context, siteID, slug string, candidates []string) (*ResolvedContent, error) {
	for _, typeSlug := range candidates {
		content, err := r.lookupType(ctx, siteID, typeSlug, slug)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return &ResolvedContent{Content: content, ContentType: typeSlug}, nil
		}
	}
	return nil, nil
}

func (r *Resolver) searchParallel(ctx context.Context, siteID, slug string, candidates []string) (*ResolvedContent, error) {
	hits := make([]json.RawMessage, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	for i, typeSlug := range candidates {
		wg.Add(1)
		go func(i int, typeSlug string) {
			defer wg.Done()
			hits[i], errs[i] = r.lookupType(ctx, siteID, typeSlug, slug)
		}(i, typeSlug)
	}
	wg.Wait()

	// First candidate in original list order wins, regardless of which
	// lookup finished first.
	for i, typeSlug := range candidates {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if hits[i] != nil {
			return &ResolvedContent{Content: hits[i], ContentType: typeSlug}, nil
		}
	}
	return nil, nil
}

// lookupType fetches at most one item of the given type with an exact slug
// match. Remote rejections of a guessed endpoint count as a miss so that the
// search can continue across the remaining candidates; only context
// cancellation aborts the whole search.
func (r *Resolver) lookupType(ctx context.Context, siteID, typeSlug, slug string) (json.RawMessage, error) {
	client, err := r.manager.GetClient(ctx, siteID)
	if err != nil {
		return nil, err
	}
	endpoint, err := r.types.Endpoint(ctx, siteID, typeSlug)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("slug", slug)
	query.Set("per_page", "1")

	var items []json.RawMessage
	if err := client.GetJSON(ctx, endpoint, query, &items); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Debug("Type lookup failed during cross-type search",
			"site", siteID,
			"content_type", typeSlug,
			"slug", slug,
			"error", err)
		return nil, nil
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// FindContentByURL resolves a content URL to a record. Path hints order the
// candidate types, post and page are unconditional fallbacks, and when the
// prioritized pass misses an unrestricted search across every discovered
// type runs before giving up with a NotFoundError.
func (r *Resolver) FindContentByURL(ctx context.Context, siteID, rawURL string) (*ResolvedContent, ParsedURL, error) {
	parsed := ParseURL(rawURL)
	if parsed.Slug == "" {
		return nil, parsed, apierrors.NewValidationError("url", rawURL, "could not extract a slug from the URL")
	}

	var prioritized []string
	for _, hint := range parsed.PathHints {
		prioritized = append(prioritized, pathHintTypes[hint]...)
	}
	prioritized = append(prioritized, wordpress.TypePost, wordpress.TypePage)
	prioritized = dedupe(prioritized)

	result, err := r.FindContentAcrossTypes(ctx, siteID, parsed.Slug, prioritized)
	if err != nil {
		return nil, parsed, err
	}
	if result == nil {
		// Prioritized search missed; try every discovered type.
		result, err = r.FindContentAcrossTypes(ctx, siteID, parsed.Slug, nil)
		if err != nil {
			return nil, parsed, err
		}
	}
	if result == nil {
		return nil, parsed, &apierrors.NotFoundError{
			SiteID:        siteID,
			Slug:          parsed.Slug,
			URL:           rawURL,
			SearchedTypes: prioritized,
		}
	}
	return result, parsed, nil
}

func dedupe(slugs []string) []string {
	seen := make(map[string]bool, len(slugs))
	out := slugs[:0]
	for _, s := range slugs {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
