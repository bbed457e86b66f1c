package typecache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

const typesBody = `{
	"post": {"name": "Posts", "slug": "post", "rest_base": "posts", "taxonomies": ["category", "post_tag"]},
	"page": {"name": "Pages", "slug": "page", "rest_base": "pages", "hierarchical": true},
	"docs": {"name": "Documentation", "slug": "docs", "rest_base": "documentation"},
	"attachment": {"name": "Media", "slug": "attachment", "rest_base": "media"}
}`

const taxonomiesBody = `{
	"category": {"name": "Categories", "slug": "category", "rest_base": "categories", "hierarchical": true, "types": ["post"]},
	"product_cat": {"name": "Product categories", "slug": "product_cat", "rest_base": "product-categories", "types": ["product"]}
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// typesServer serves the discovery endpoints and counts type fetches.
func typesServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/":
			fmt.Fprint(w, `{}`)
		case "/wp-json/wp/v2/types":
			if fetches != nil {
				fetches.Add(1)
			}
			fmt.Fprint(w, typesBody)
		case "/wp-json/wp/v2/taxonomies":
			fmt.Fprint(w, taxonomiesBody)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code":"rest_no_route","message":"no route"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func cacheForServer(t *testing.T, url, cacheDir string) *Cache {
	t.Helper()
	for _, key := range []string{"WORDPRESS_API_URL", "WORDPRESS_USERNAME", "WORDPRESS_PASSWORD"} {
		t.Setenv(key, "")
	}
	t.Setenv("WORDPRESS_1_URL", url)
	t.Setenv("WORDPRESS_1_USERNAME", "admin")
	t.Setenv("WORDPRESS_1_PASSWORD", "secret")
	t.Setenv("WORDPRESS_1_ID", "blog")
	t.Setenv("WORDPRESS_CACHE_DIR", cacheDir)

	registry, err := site.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	manager := site.NewManager(registry, testLogger())
	return New(manager, testLogger())
}

func TestGetContentTypes_FetchesOnceThenServesMemory(t *testing.T) {
	var fetches atomic.Int32
	srv := typesServer(t, &fetches)
	c := cacheForServer(t, srv.URL, t.TempDir())
	ctx := context.Background()

	dir, err := c.GetContentTypes(ctx, "blog", false)
	if err != nil {
		t.Fatalf("GetContentTypes: %v", err)
	}
	if len(dir) != 4 {
		t.Fatalf("got %d types, want 4", len(dir))
	}
	if dir["docs"].RestBase != "documentation" {
		t.Errorf("docs rest_base = %q, want documentation", dir["docs"].RestBase)
	}

	if _, err := c.GetContentTypes(ctx, "blog", false); err != nil {
		t.Fatalf("second GetContentTypes: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("type fetches = %d, want 1", got)
	}
}

func TestGetContentTypes_ForceRefresh(t *testing.T) {
	var fetches atomic.Int32
	srv := typesServer(t, &fetches)
	c := cacheForServer(t, srv.URL, t.TempDir())
	ctx := context.Background()

	if _, err := c.GetContentTypes(ctx, "blog", false); err != nil {
		t.Fatalf("GetContentTypes: %v", err)
	}
	if _, err := c.GetContentTypes(ctx, "blog", true); err != nil {
		t.Fatalf("forced GetContentTypes: %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Errorf("type fetches = %d, want 2 with force_refresh", got)
	}
}

func TestGetContentTypes_DurableTierSurvivesRestart(t *testing.T) {
	var fetches atomic.Int32
	srv := typesServer(t, &fetches)
	cacheDir := t.TempDir()

	first := cacheForServer(t, srv.URL, cacheDir)
	if _, err := first.GetContentTypes(context.Background(), "blog", false); err != nil {
		t.Fatalf("GetContentTypes: %v", err)
	}

	// A fresh Cache instance simulates a server restart with the same
	// durable directory. The snapshot must come from disk, not the network.
	second := cacheForServer(t, srv.URL, cacheDir)
	dir, err := second.GetContentTypes(context.Background(), "blog", false)
	if err != nil {
		t.Fatalf("GetContentTypes after restart: %v", err)
	}
	if len(dir) != 4 {
		t.Fatalf("got %d types, want 4", len(dir))
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("type fetches = %d, want 1 (disk tier should serve the restart)", got)
	}
}

func TestGetContentTypes_StaleDurableRefetches(t *testing.T) {
	var fetches atomic.Int32
	srv := typesServer(t, &fetches)
	cacheDir := t.TempDir()

	c := cacheForServer(t, srv.URL, cacheDir)
	if _, err := c.GetContentTypes(context.Background(), "blog", false); err != nil {
		t.Fatalf("GetContentTypes: %v", err)
	}

	// Age the durable snapshot past the TTL and drop the memory tier.
	path := filepath.Join(cacheDir, "types-blog.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read durable file: %v", err)
	}
	var file struct {
		Data      Directory `json:"data"`
		Timestamp int64     `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		t.Fatalf("decode durable file: %v", err)
	}
	file.Timestamp = time.Now().Add(-2 * time.Hour).UnixMilli()
	aged, _ := json.Marshal(file)
	if err := os.WriteFile(path, aged, 0o644); err != nil {
		t.Fatalf("write aged file: %v", err)
	}

	fresh := cacheForServer(t, srv.URL, cacheDir)
	if _, err := fresh.GetContentTypes(context.Background(), "blog", false); err != nil {
		t.Fatalf("GetContentTypes with stale disk: %v", err)
	}
	if got := fetches.Load(); got != 2 {
		t.Errorf("type fetches = %d, want 2 (stale disk must refetch)", got)
	}
}

func TestGetContentTypes_CorruptDurableIgnored(t *testing.T) {
	var fetches atomic.Int32
	srv := typesServer(t, &fetches)
	cacheDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cacheDir, "types-blog.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	c := cacheForServer(t, srv.URL, cacheDir)
	if _, err := c.GetContentTypes(context.Background(), "blog", false); err != nil {
		t.Fatalf("GetContentTypes with corrupt disk: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("type fetches = %d, want 1", got)
	}
}

func TestEndpoint_BuiltinsBypassNetwork(t *testing.T) {
	// No server at this URL; built-in lookups must not need one.
	c := cacheForServer(t, "http://127.0.0.1:1", t.TempDir())
	ctx := context.Background()

	for slug, want := range map[string]string{
		wordpress.TypePost: "posts",
		wordpress.TypePage: "pages",
	} {
		got, err := c.Endpoint(ctx, "blog", slug)
		if err != nil {
			t.Fatalf("Endpoint(%s): %v", slug, err)
		}
		if got != want {
			t.Errorf("Endpoint(%s) = %q, want %q", slug, got, want)
		}
	}
}

func TestEndpoint_DirectoryAndIdentityFallback(t *testing.T) {
	srv := typesServer(t, nil)
	c := cacheForServer(t, srv.URL, t.TempDir())
	ctx := context.Background()

	got, err := c.Endpoint(ctx, "blog", "docs")
	if err != nil {
		t.Fatalf("Endpoint(docs): %v", err)
	}
	if got != "documentation" {
		t.Errorf("Endpoint(docs) = %q, want documentation", got)
	}

	// Unknown type resolves to itself so the remote decides.
	got, err = c.Endpoint(ctx, "blog", "event")
	if err != nil {
		t.Fatalf("Endpoint(event): %v", err)
	}
	if got != "event" {
		t.Errorf("Endpoint(event) = %q, want event", got)
	}
}

func TestDurablePath_PerSiteIsolation(t *testing.T) {
	srv := typesServer(t, nil)
	c := cacheForServer(t, srv.URL, t.TempDir())

	a := c.durablePath("blog")
	b := c.durablePath("shop")
	if a == b {
		t.Error("distinct sites must get distinct durable files")
	}

	weird := c.durablePath("../evil/site")
	if filepath.Dir(weird) != filepath.Dir(a) {
		t.Errorf("sanitized path %q escaped the cache directory", weird)
	}
}

func TestGetTaxonomies(t *testing.T) {
	srv := typesServer(t, nil)
	c := cacheForServer(t, srv.URL, t.TempDir())
	ctx := context.Background()

	taxes, err := c.GetTaxonomies(ctx, "blog", false)
	if err != nil {
		t.Fatalf("GetTaxonomies: %v", err)
	}
	if len(taxes) != 2 {
		t.Fatalf("got %d taxonomies, want 2", len(taxes))
	}
	if taxes["product_cat"].RestBase != "product-categories" {
		t.Errorf("product_cat rest_base = %q", taxes["product_cat"].RestBase)
	}
}

func TestTaxonomyEndpoint(t *testing.T) {
	srv := typesServer(t, nil)
	c := cacheForServer(t, srv.URL, t.TempDir())
	ctx := context.Background()

	tests := []struct {
		slug string
		want string
	}{
		{"category", "categories"},            // builtin
		{"post_tag", "tags"},                  // builtin
		{"product_cat", "product-categories"}, // discovered
		{"mystery", "mystery"},                // identity fallback
	}
	for _, tt := range tests {
		got, err := c.TaxonomyEndpoint(ctx, "blog", tt.slug)
		if err != nil {
			t.Fatalf("TaxonomyEndpoint(%s): %v", tt.slug, err)
		}
		if got != tt.want {
			t.Errorf("TaxonomyEndpoint(%s) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}
