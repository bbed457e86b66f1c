package site

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olgasafonova/wordpress-mcp-server/internal/apierrors"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

// Manager lazily builds and caches one authenticated client per site.
// A client enters the cache only after its connectivity probe succeeds, so a
// broken site is re-probed on the next call instead of poisoning the cache.
type Manager struct {
	registry   *Registry
	logger     *slog.Logger
	clientOpts []wordpress.Option

	mu      sync.Mutex
	clients map[string]*wordpress.Client
}

// NewManager creates a Manager over the given registry. clientOpts are
// applied to every client it constructs (tests use this to inject an
// httptest-backed HTTP client).
func NewManager(registry *Registry, logger *slog.Logger, clientOpts ...wordpress.Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry:   registry,
		logger:     logger,
		clientOpts: clientOpts,
		clients:    make(map[string]*wordpress.Client),
	}
}

// Registry returns the site registry backing this manager.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// GetClient returns the cached client for siteID (empty means the default
// site), building and probing one on first use. Probe failure returns a
// SiteConnectionError and leaves the cache untouched.
func (m *Manager) GetClient(ctx context.Context, siteID string) (*wordpress.Client, error) {
	cfg, err := m.registry.Get(siteID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if client, ok := m.clients[cfg.ID]; ok {
		m.mu.Unlock()
		return client, nil
	}
	m.mu.Unlock()

	// Probe outside the lock so a slow site doesn't serialize every caller.
	// Concurrent callers may both probe; the writes are idempotent.
	client := wordpress.NewClient(cfg.ID, cfg.URL, cfg.Username, cfg.Password, m.clientOpts...)
	if err := client.Probe(ctx); err != nil {
		m.logger.Warn("Site connectivity probe failed",
			"site", cfg.ID,
			"url", client.BaseURL(),
			"error", err)
		return nil, &apierrors.SiteConnectionError{SiteID: cfg.ID, URL: client.BaseURL(), Err: err}
	}

	m.mu.Lock()
	if existing, ok := m.clients[cfg.ID]; ok {
		client = existing
	} else {
		m.clients[cfg.ID] = client
	}
	m.mu.Unlock()

	m.logger.Info("Site client ready", "site", cfg.ID, "url", client.BaseURL())
	return client, nil
}

// TestResult reports the outcome of a site connectivity test.
type TestResult struct {
	SiteID  string `json:"site_id"`
	URL     string `json:"url,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TestSite checks connectivity to a site. It never returns a Go error;
// failures of any kind land in the result record.
func (m *Manager) TestSite(ctx context.Context, siteID string) TestResult {
	cfg, err := m.registry.Get(siteID)
	if err != nil {
		return TestResult{SiteID: siteID, Error: err.Error()}
	}

	client, err := m.GetClient(ctx, cfg.ID)
	if err != nil {
		return TestResult{SiteID: cfg.ID, Error: err.Error()}
	}
	if err := client.Probe(ctx); err != nil {
		return TestResult{SiteID: cfg.ID, URL: client.BaseURL(), Error: err.Error()}
	}
	return TestResult{SiteID: cfg.ID, URL: client.BaseURL(), Success: true}
}
