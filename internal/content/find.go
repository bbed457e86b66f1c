package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// FindBySlug searches candidate content types for an exact slug match. A
// miss is a found=false result; only infrastructure failures surface as
// errors.
func (s *Service) FindBySlug(ctx context.Context, args FindBySlugArgs) (FindResult, error) {
	id := s.resolveSiteID(args.Site)
	hit, err := s.resolver.FindContentAcrossTypes(ctx, id, args.Slug, args.ContentTypes)
	if err != nil {
		return FindResult{}, err
	}
	if hit == nil {
		return FindResult{
			Found:         false,
			Slug:          args.Slug,
			SearchedTypes: args.ContentTypes,
			Message:       fmt.Sprintf("no content with slug %q", args.Slug),
		}, nil
	}
	return FindResult{
		Found:       true,
		ContentType: hit.ContentType,
		Content:     hit.Content,
		Slug:        args.Slug,
	}, nil
}

// FindByURL resolves a full content URL: the site is detected from the URL
// when not given, the slug is the last path segment, and earlier segments
// prioritize which content types are tried first.
func (s *Service) FindByURL(ctx context.Context, args FindByURLArgs) (FindResult, error) {
	siteArg := args.Site
	if siteArg == "" {
		siteArg = s.manager.Registry().DetectSite(args.URL)
	}
	id := s.resolveSiteID(siteArg)

	hit, parsed, err := s.resolver.FindContentByURL(ctx, id, args.URL)
	if err != nil {
		var nf *apierrors.NotFoundError
		if errors.As(err, &nf) {
			return FindResult{
				Found:         false,
				Slug:          parsed.Slug,
				PathHints:     parsed.PathHints,
				SearchedTypes: nf.SearchedTypes,
				Message:       nf.Error(),
			}, nil
		}
		return FindResult{}, err
	}
	return FindResult{
		Found:       true,
		ContentType: hit.ContentType,
		Content:     hit.Content,
		Slug:        parsed.Slug,
		PathHints:   parsed.PathHints,
	}, nil
}
