package content

import (
	"context"
	"sort"

	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

// ListContentTypes returns the site's content-type directory, sorted by slug
// for stable output. force_refresh bypasses both cache tiers.
func (s *Service) ListContentTypes(ctx context.Context, args ListContentTypesArgs) (ListContentTypesResult, error) {
	id := s.resolveSiteID(args.Site)
	dir, err := s.types.GetContentTypes(ctx, id, args.ForceRefresh)
	if err != nil {
		return ListContentTypesResult{}, err
	}

	types := make([]wordpress.ContentType, 0, len(dir))
	for _, ct := range dir {
		types = append(types, ct)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Slug < types[j].Slug })

	return ListContentTypesResult{ContentTypes: types, Count: len(types)}, nil
}

// ListTaxonomies returns the site's taxonomy directory, sorted by slug.
func (s *Service) ListTaxonomies(ctx context.Context, args ListTaxonomiesArgs) (ListTaxonomiesResult, error) {
	id := s.resolveSiteID(args.Site)
	dir, err := s.types.GetTaxonomies(ctx, id, false)
	if err != nil {
		return ListTaxonomiesResult{}, err
	}

	taxes := make([]wordpress.Taxonomy, 0, len(dir))
	for _, tax := range dir {
		taxes = append(taxes, tax)
	}
	sort.Slice(taxes, func(i, j int) bool { return taxes[i].Slug < taxes[j].Slug })

	return ListTaxonomiesResult{Taxonomies: taxes, Count: len(taxes)}, nil
}
