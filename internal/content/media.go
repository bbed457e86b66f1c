package content

import (
	"context"
	"strconv"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// ListMedia lists media library items.
func (s *Service) ListMedia(ctx context.Context, args ListMediaArgs) (ListMediaResult, error) {
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return ListMediaResult{}, err
	}

	q := pageQuery(args.Page, args.PerPage)
	if args.Search != "" {
		q.Set("search", args.Search)
	}

	var items []MediaItem
	if err := client.GetJSON(ctx, "media", q, &items); err != nil {
		return ListMediaResult{}, err
	}
	return ListMediaResult{Items: items, Count: len(items)}, nil
}

// GetMedia fetches one media item by id.
func (s *Service) GetMedia(ctx context.Context, args GetMediaArgs) (GetMediaResult, error) {
	if args.ID <= 0 {
		return GetMediaResult{}, apierrors.NewValidationError("id", args.ID, "must be a positive integer")
	}
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return GetMediaResult{}, err
	}

	var item MediaItem
	if err := client.GetJSON(ctx, "media/"+strconv.Itoa(args.ID), nil, &item); err != nil {
		return GetMediaResult{}, err
	}
	return GetMediaResult{Item: item}, nil
}
