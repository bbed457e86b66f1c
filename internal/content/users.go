package content

import (
	"context"
	"strconv"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
)

// ListUsers lists site users.
func (s *Service) ListUsers(ctx context.Context, args ListUsersArgs) (ListUsersResult, error) {
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return ListUsersResult{}, err
	}

	q := pageQuery(1, args.PerPage)
	if args.Search != "" {
		q.Set("search", args.Search)
	}

	var users []User
	if err := client.GetJSON(ctx, "users", q, &users); err != nil {
		return ListUsersResult{}, err
	}
	return ListUsersResult{Users: users, Count: len(users)}, nil
}

// GetUser fetches one user by id.
func (s *Service) GetUser(ctx context.Context, args GetUserArgs) (GetUserResult, error) {
	if args.ID <= 0 {
		return GetUserResult{}, apierrors.NewValidationError("id", args.ID, "must be a positive integer")
	}
	client, _, err := s.client(ctx, args.Site)
	if err != nil {
		return GetUserResult{}, err
	}

	var user User
	if err := client.GetJSON(ctx, "users/"+strconv.Itoa(args.ID), nil, &user); err != nil {
		return GetUserResult{}, err
	}
	return GetUserResult{User: user}, nil
}
