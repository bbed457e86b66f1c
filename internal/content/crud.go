package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// pageQuery builds the shared pagination parameters.
func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	q.Set("per_page", strconv.Itoa(perPage))
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// ListContent lists items of one content type. The type's REST endpoint
// comes from the directory, so custom types work without configuration.
func (s *Service) ListContent(ctx context.Context, args ListContentArgs) (ListContentResult, error) {
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return ListContentResult{}, err
	}
	endpoint, err := s.types.Endpoint(ctx, id, args.ContentType)
	if err != nil {
		return ListContentResult{}, err
	}

	q := pageQuery(args.Page, args.PerPage)
	if args.Search != "" {
		q.Set("search", args.Search)
	}
	if args.Status != "" {
		q.Set("status", args.Status)
	}

	var items []json.RawMessage
	if err := client.GetJSON(ctx, endpoint, q, &items); err != nil {
		return ListContentResult{}, err
	}
	return ListContentResult{
		ContentType: args.ContentType,
		Endpoint:    endpoint,
		Items:       items,
		Count:       len(items),
	}, nil
}

// GetContent fetches one item by id.
func (s *Service) GetContent(ctx context.Context, args GetContentArgs) (GetContentResult, error) {
	if args.ID <= 0 {
		return GetContentResult{}, apierrors.NewValidationError("id", args.ID, "must be a positive integer")
	}
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return GetContentResult{}, err
	}
	endpoint, err := s.types.Endpoint(ctx, id, args.ContentType)
	if err != nil {
		return GetContentResult{}, err
	}

	var item json.RawMessage
	if err := client.GetJSON(ctx, endpoint+"/"+strconv.Itoa(args.ID), nil, &item); err != nil {
		return GetContentResult{}, err
	}
	return GetContentResult{ContentType: args.ContentType, Content: item}, nil
}

// CreateContent creates an item. New items default to draft status so a
// typo'd tool call never publishes by accident.
func (s *Service) CreateContent(ctx context.Context, args CreateContentArgs) (MutationResult, error) {
	if args.Title == "" {
		return MutationResult{}, apierrors.NewValidationError("title", args.Title, "must not be empty")
	}
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return MutationResult{}, err
	}
	endpoint, err := s.types.Endpoint(ctx, id, args.ContentType)
	if err != nil {
		return MutationResult{}, err
	}

	payload := map[string]any{
		"title":  args.Title,
		"status": "draft",
	}
	if args.Status != "" {
		payload["status"] = args.Status
	}
	if args.Content != "" {
		payload["content"] = args.Content
	}
	if args.Excerpt != "" {
		payload["excerpt"] = args.Excerpt
	}
	if args.Slug != "" {
		payload["slug"] = args.Slug
	}

	var item json.RawMessage
	if err := client.SendJSON(ctx, http.MethodPost, endpoint, payload, &item); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{ContentType: args.ContentType, Content: item}, nil
}

// UpdateContent updates the given fields of an item; empty fields are left
// untouched.
func (s *Service) UpdateContent(ctx context.Context, args UpdateContentArgs) (MutationResult, error) {
	if args.ID <= 0 {
		return MutationResult{}, apierrors.NewValidationError("id", args.ID, "must be a positive integer")
	}

	payload := map[string]any{}
	if args.Title != "" {
		payload["title"] = args.Title
	}
	if args.Content != "" {
		payload["content"] = args.Content
	}
	if args.Excerpt != "" {
		payload["excerpt"] = args.Excerpt
	}
	if args.Slug != "" {
		payload["slug"] = args.Slug
	}
	if args.Status != "" {
		payload["status"] = args.Status
	}
	if len(payload) == 0 {
		return MutationResult{}, apierrors.NewValidationError("fields", nil, "at least one field to update is required")
	}

	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return MutationResult{}, err
	}
	endpoint, err := s.types.Endpoint(ctx, id, args.ContentType)
	if err != nil {
		return MutationResult{}, err
	}

	var item json.RawMessage
	if err := client.SendJSON(ctx, http.MethodPost, endpoint+"/"+strconv.Itoa(args.ID), payload, &item); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{ContentType: args.ContentType, Content: item}, nil
}

// DeleteContent trashes an item, or deletes it permanently with force. The
// REST API returns different shapes for the two cases: a forced delete
// wraps the removed record under "previous", a trash returns the record
// itself.
func (s *Service) DeleteContent(ctx context.Context, args DeleteContentArgs) (DeleteContentResult, error) {
	if args.ID <= 0 {
		return DeleteContentResult{}, apierrors.NewValidationError("id", args.ID, "must be a positive integer")
	}
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return DeleteContentResult{}, err
	}
	endpoint, err := s.types.Endpoint(ctx, id, args.ContentType)
	if err != nil {
		return DeleteContentResult{}, err
	}

	q := url.Values{}
	if args.Force {
		q.Set("force", "true")
	}
	var raw json.RawMessage
	if err := client.Delete(ctx, endpoint+"/"+strconv.Itoa(args.ID), q, &raw); err != nil {
		return DeleteContentResult{}, err
	}

	result := DeleteContentResult{ContentType: args.ContentType, Deleted: true, Content: raw}
	var forced struct {
		Deleted  bool            `json:"deleted"`
		Previous json.RawMessage `json:"previous"`
	}
	if err := json.Unmarshal(raw, &forced); err == nil && forced.Deleted {
		result.Content = forced.Previous
	}
	return result, nil
}
