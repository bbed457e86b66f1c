package content

import (
	"context"
	"net/http"
	"strconv"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// ListComments lists comments, optionally scoped to one content item.
func (s *Service) ListComments(ctx context.Context, args ListCommentsArgs) (ListCommentsResult, error) {
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return ListCommentsResult{}, err
	}

	q := pageQuery(args.Page, args.PerPage)
	if args.PostID > 0 {
		q.Set("post", strconv.Itoa(args.PostID))
	}
	if args.Status != "" {
		q.Set("status", args.Status)
	}

	var comments []Comment
	if err := client.GetJSON(ctx, "comments", q, &comments); err != nil {
		return ListCommentsResult{}, err
	}
	return ListCommentsResult{Comments: comments, Count: len(comments)}, nil
}

// CreateComment posts a comment on a content item. The commenting identity
// is the authenticated user.
func (s *Service) CreateComment(ctx context.Context, args CreateCommentArgs) (CreateCommentResult, error) {
	if args.PostID <= 0 {
		return CreateCommentResult{}, apierrors.NewValidationError("post_id", args.PostID, "must be a positive integer")
	}
	if args.Content == "" {
		return CreateCommentResult{}, apierrors.NewValidationError("content", args.Content, "must not be empty")
	}
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return CreateCommentResult{}, err
	}

	payload := map[string]any{
		"post":    args.PostID,
		"content": args.Content,
	}
	var comment Comment
	if err := client.SendJSON(ctx, http.MethodPost, "comments", payload, &comment); err != nil {
		return CreateCommentResult{}, err
	}
	return CreateCommentResult{Comment: comment}, nil
}
