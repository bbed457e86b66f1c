package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func managerForURL(t *testing.T, url string) *Manager {
	t.Helper()
	clearSiteEnv(t)
	setSite(t, 1, url, "admin", "secret")
	t.Setenv("WORDPRESS_1_ID", "blog")

	r, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return NewManager(r, testLogger(), wordpress.WithMaxRetries(0))
}

func TestGetClient_ProbesOnceAndCaches(t *testing.T) {
	var probes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		fmt.Fprint(w, `{"routes":{}}`)
	}))
	defer srv.Close()

	m := managerForURL(t, srv.URL)
	ctx := context.Background()

	first, err := m.GetClient(ctx, "blog")
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	second, err := m.GetClient(ctx, "blog")
	if err != nil {
		t.Fatalf("GetClient (cached): %v", err)
	}

	if first != second {
		t.Error("expected the cached client instance on the second call")
	}
	if got := probes.Load(); got != 1 {
		t.Errorf("probe count = %d, want 1", got)
	}
}

func TestGetClient_EmptyIDUsesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	m := managerForURL(t, srv.URL)

	client, err := m.GetClient(context.Background(), "")
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if client.SiteID() != "blog" {
		t.Errorf("SiteID = %q, want blog", client.SiteID())
	}
}

func TestGetClient_UnknownSite(t *testing.T) {
	m := managerForURL(t, "https://unused.example.com")

	_, err := m.GetClient(context.Background(), "shop")
	var unknown *apierrors.UnknownSiteError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSiteError, got %v", err)
	}
}

func TestGetClient_FailedProbeNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"code":"rest_unauthorized","message":"bad credentials"}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	m := managerForURL(t, srv.URL)
	ctx := context.Background()

	_, err := m.GetClient(ctx, "blog")
	var connErr *apierrors.SiteConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected SiteConnectionError, got %v", err)
	}

	// The failed probe must not poison the cache; the next call re-probes
	// and succeeds.
	if _, err := m.GetClient(ctx, "blog"); err != nil {
		t.Fatalf("GetClient after recovery: %v", err)
	}
}

func TestTestSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	m := managerForURL(t, srv.URL)

	res := m.TestSite(context.Background(), "blog")
	if !res.Success {
		t.Fatalf("Success = false, error = %q", res.Error)
	}
	if res.SiteID != "blog" {
		t.Errorf("SiteID = %q, want blog", res.SiteID)
	}
	if res.URL == "" {
		t.Error("URL should be set on success")
	}
}

func TestTestSite_FailureInResult(t *testing.T) {
	m := managerForURL(t, "http://127.0.0.1:1") // nothing listens here

	res := m.TestSite(context.Background(), "blog")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error == "" {
		t.Error("Error should describe the failure")
	}
}

func TestTestSite_UnknownSiteInResult(t *testing.T) {
	m := managerForURL(t, "https://unused.example.com")

	res := m.TestSite(context.Background(), "shop")
	if res.Success {
		t.Fatal("expected failure for unknown site")
	}
	if res.Error == "" {
		t.Error("Error should name the unknown site")
	}
}
