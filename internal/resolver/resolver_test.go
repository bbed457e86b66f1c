package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/typecache"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want ParsedURL
	}{
		{
			name: "plain post URL",
			url:  "https://example.com/hello-world/",
			want: ParsedURL{Slug: "hello-world"},
		},
		{
			name: "nested path keeps hints",
			url:  "https://example.com/documentation/api-guide/",
			want: ParsedURL{Slug: "api-guide", PathHints: []string{"documentation"}},
		},
		{
			name: "hints are lowercased",
			url:  "https://example.com/Products/Widgets/blue-widget",
			want: ParsedURL{Slug: "blue-widget", PathHints: []string{"products", "widgets"}},
		},
		{
			name: "date archive path",
			url:  "https://example.com/2024/03/launch-post/",
			want: ParsedURL{Slug: "launch-post", PathHints: []string{"2024", "03"}},
		},
		{
			name: "surrounding whitespace trimmed",
			url:  "  https://example.com/about  ",
			want: ParsedURL{Slug: "about"},
		},
		{
			name: "bare path without host",
			url:  "/blog/first-post",
			want: ParsedURL{Slug: "first-post", PathHints: []string{"blog"}},
		},
		{
			name: "root URL has no slug",
			url:  "https://example.com/",
			want: ParsedURL{},
		},
		{
			name: "empty input",
			url:  "",
			want: ParsedURL{},
		},
		{
			name: "malformed URL",
			url:  "://not-a-url",
			want: ParsedURL{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseURL(tt.url)
			if got.Slug != tt.want.Slug {
				t.Errorf("Slug = %q, want %q", got.Slug, tt.want.Slug)
			}
			if !reflect.DeepEqual(got.PathHints, tt.want.PathHints) {
				t.Errorf("PathHints = %v, want %v", got.PathHints, tt.want.PathHints)
			}
		})
	}
}

// contentServer serves a slug search where only the configured type has a
// match, plus the discovery endpoints the type cache needs.
func contentServer(t *testing.T, matchEndpoint, matchSlug string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/")
		switch path {
		case "":
			fmt.Fprint(w, `{}`)
		case "types":
			fmt.Fprint(w, `{
				"post": {"name": "Posts", "slug": "post", "rest_base": "posts"},
				"page": {"name": "Pages", "slug": "page", "rest_base": "pages"},
				"docs": {"name": "Documentation", "slug": "docs", "rest_base": "documentation"},
				"attachment": {"name": "Media", "slug": "attachment", "rest_base": "media"}
			}`)
		case "taxonomies":
			fmt.Fprint(w, `{}`)
		case matchEndpoint:
			if r.URL.Query().Get("slug") == matchSlug {
				fmt.Fprintf(w, `[{"id": 42, "slug": %q, "type": "found-here"}]`, matchSlug)
				return
			}
			fmt.Fprint(w, `[]`)
		case "posts", "pages", "documentation":
			fmt.Fprint(w, `[]`)
		default:
			// Guessed endpoints for types the site does not expose.
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"rest_no_route","message":"no route"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func resolverForServer(t *testing.T, url string, parallel bool) *Resolver {
	t.Helper()
	for _, key := range []string{"WORDPRESS_API_URL", "WORDPRESS_USERNAME", "WORDPRESS_PASSWORD"} {
		t.Setenv(key, "")
	}
	t.Setenv("WORDPRESS_1_URL", url)
	t.Setenv("WORDPRESS_1_USERNAME", "admin")
	t.Setenv("WORDPRESS_1_PASSWORD", "secret")
	t.Setenv("WORDPRESS_1_ID", "blog")
	t.Setenv("WORDPRESS_CACHE_DIR", t.TempDir())
	if parallel {
		t.Setenv("WORDPRESS_PARALLEL_SEARCH", "true")
	} else {
		t.Setenv("WORDPRESS_PARALLEL_SEARCH", "false")
	}

	registry, err := site.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := site.NewManager(registry, logger)
	return New(manager, typecache.New(manager, logger), logger)
}

func TestFindContentAcrossTypes_EmptySlug(t *testing.T) {
	r := resolverForServer(t, "http://127.0.0.1:1", false)

	_, err := r.FindContentAcrossTypes(context.Background(), "blog", "", nil)
	var verr *apierrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestFindContentAcrossTypes_ModesAgree(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			srv := contentServer(t, "documentation", "api-guide")
			r := resolverForServer(t, srv.URL, parallel)

			hit, err := r.FindContentAcrossTypes(context.Background(), "blog", "api-guide", []string{"post", "page", "docs"})
			if err != nil {
				t.Fatalf("FindContentAcrossTypes: %v", err)
			}
			if hit == nil {
				t.Fatal("expected a hit")
			}
			if hit.ContentType != "docs" {
				t.Errorf("ContentType = %q, want docs", hit.ContentType)
			}
			if !strings.Contains(string(hit.Content), `"id": 42`) {
				t.Errorf("Content = %s, want the matched record", hit.Content)
			}
		})
	}
}

func TestFindContentAcrossTypes_FirstCandidateWins(t *testing.T) {
	// Both posts and pages match the slug; list order must decide.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2/")
		switch path {
		case "":
			fmt.Fprint(w, `{}`)
		case "posts":
			fmt.Fprint(w, `[{"id": 1, "type": "post"}]`)
		case "pages":
			fmt.Fprint(w, `[{"id": 2, "type": "page"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"rest_no_route","message":"no route"}`)
		}
	}))
	defer srv.Close()

	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			r := resolverForServer(t, srv.URL, parallel)

			hit, err := r.FindContentAcrossTypes(context.Background(), "blog", "shared", []string{"page", "post"})
			if err != nil {
				t.Fatalf("FindContentAcrossTypes: %v", err)
			}
			if hit == nil || hit.ContentType != "page" {
				t.Fatalf("hit = %+v, want the page candidate", hit)
			}
		})
	}
}

func TestFindContentAcrossTypes_MissIsNilNotError(t *testing.T) {
	srv := contentServer(t, "documentation", "api-guide")
	r := resolverForServer(t, srv.URL, false)

	hit, err := r.FindContentAcrossTypes(context.Background(), "blog", "no-such-slug", []string{"post", "page"})
	if err != nil {
		t.Fatalf("FindContentAcrossTypes: %v", err)
	}
	if hit != nil {
		t.Errorf("hit = %+v, want nil for a miss", hit)
	}
}

func TestFindContentAcrossTypes_RejectedEndpointCountsAsMiss(t *testing.T) {
	// "team" is not a registered type, so its guessed endpoint 404s; the
	// search must continue to the type that actually matches.
	srv := contentServer(t, "posts", "hello-world")
	r := resolverForServer(t, srv.URL, false)

	hit, err := r.FindContentAcrossTypes(context.Background(), "blog", "hello-world", []string{"team", "post"})
	if err != nil {
		t.Fatalf("FindContentAcrossTypes: %v", err)
	}
	if hit == nil || hit.ContentType != "post" {
		t.Fatalf("hit = %+v, want the post candidate", hit)
	}
}

func TestFindContentAcrossTypes_EmptyCandidatesSkipAttachments(t *testing.T) {
	srv := contentServer(t, "documentation", "api-guide")
	r := resolverForServer(t, srv.URL, false)

	hit, err := r.FindContentAcrossTypes(context.Background(), "blog", "api-guide", nil)
	if err != nil {
		t.Fatalf("FindContentAcrossTypes: %v", err)
	}
	if hit == nil || hit.ContentType != "docs" {
		t.Fatalf("hit = %+v, want docs via discovery", hit)
	}
}

func TestFindContentByURL_PathHintsPrioritize(t *testing.T) {
	srv := contentServer(t, "documentation", "api-guide")
	r := resolverForServer(t, srv.URL, false)

	hit, parsed, err := r.FindContentByURL(context.Background(), "blog", srv.URL+"/documentation/api-guide/")
	if err != nil {
		t.Fatalf("FindContentByURL: %v", err)
	}
	if hit.ContentType != "docs" {
		t.Errorf("ContentType = %q, want docs", hit.ContentType)
	}
	if parsed.Slug != "api-guide" {
		t.Errorf("parsed slug = %q, want api-guide", parsed.Slug)
	}
}

func TestFindContentByURL_UnrestrictedRetry(t *testing.T) {
	// The URL path gives no usable hint, so the prioritized pass (post,
	// page) misses and the full-directory pass must find the docs record.
	srv := contentServer(t, "documentation", "api-guide")
	r := resolverForServer(t, srv.URL, false)

	hit, _, err := r.FindContentByURL(context.Background(), "blog", srv.URL+"/api-guide/")
	if err != nil {
		t.Fatalf("FindContentByURL: %v", err)
	}
	if hit.ContentType != "docs" {
		t.Errorf("ContentType = %q, want docs from the unrestricted pass", hit.ContentType)
	}
}

func TestFindContentByURL_NotFound(t *testing.T) {
	srv := contentServer(t, "documentation", "api-guide")
	r := resolverForServer(t, srv.URL, false)

	_, _, err := r.FindContentByURL(context.Background(), "blog", srv.URL+"/blog/no-such-slug/")
	var nf *apierrors.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nf.Slug != "no-such-slug" {
		t.Errorf("Slug = %q, want no-such-slug", nf.Slug)
	}
	if len(nf.SearchedTypes) == 0 {
		t.Error("SearchedTypes should record the prioritized candidates")
	}
}

func TestFindContentByURL_NoSlug(t *testing.T) {
	r := resolverForServer(t, "http://127.0.0.1:1", false)

	_, _, err := r.FindContentByURL(context.Background(), "blog", "https://example.com/")
	var verr *apierrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"docs", "post", "docs", "page", "post"})
	want := []string{"docs", "post", "page"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dedupe = %v, want %v", got, want)
	}
}
