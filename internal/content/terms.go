package content

import (
	"context"
	"net/http"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// ListTerms lists terms of one taxonomy. The taxonomy's REST endpoint comes
// from the taxonomy directory, so custom taxonomies work unaided.
func (s *Service) ListTerms(ctx context.Context, args ListTermsArgs) (ListTermsResult, error) {
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return ListTermsResult{}, err
	}
	endpoint, err := s.types.TaxonomyEndpoint(ctx, id, args.Taxonomy)
	if err != nil {
		return ListTermsResult{}, err
	}

	q := pageQuery(1, args.PerPage)
	if args.Search != "" {
		q.Set("search", args.Search)
	}

	var terms []Term
	if err := client.GetJSON(ctx, endpoint, q, &terms); err != nil {
		return ListTermsResult{}, err
	}
	return ListTermsResult{Taxonomy: args.Taxonomy, Terms: terms, Count: len(terms)}, nil
}

// CreateTerm creates a taxonomy term.
func (s *Service) CreateTerm(ctx context.Context, args CreateTermArgs) (CreateTermResult, error) {
	if args.Name == "" {
		return CreateTermResult{}, apierrors.NewValidationError("name", args.Name, "must not be empty")
	}
	client, id, err := s.client(ctx, args.Site)
	if err != nil {
		return CreateTermResult{}, err
	}
	endpoint, err := s.types.TaxonomyEndpoint(ctx, id, args.Taxonomy)
	if err != nil {
		return CreateTermResult{}, err
	}

	payload := map[string]any{"name": args.Name}
	if args.Slug != "" {
		payload["slug"] = args.Slug
	}
	if args.Description != "" {
		payload["description"] = args.Description
	}
	if args.Parent > 0 {
		payload["parent"] = args.Parent
	}

	var term Term
	if err := client.SendJSON(ctx, http.MethodPost, endpoint, payload, &term); err != nil {
		return CreateTermResult{}, err
	}
	return CreateTermResult{Taxonomy: args.Taxonomy, Term: term}, nil
}
