// Package content implements the MCP tool surface over the WordPress REST
// API: site management, content-type discovery, slug/URL resolution, and
// generic content CRUD routed through the content-type directory.
package content

import (
	"context"
	"log/slog"

	"github.com/olgasafonova/wordpress-mcp-server/internal/resolver"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/typecache"
	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

// Service backs every MCP tool. Tool handlers call one method each; the
// methods validate semantic conditions (known site, sensible ids) and
// delegate shape validation to the MCP schema layer.
type Service struct {
	manager  *site.Manager
	types    *typecache.Cache
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// NewService wires the tool surface over the shared components.
func NewService(manager *site.Manager, types *typecache.Cache, res *resolver.Resolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		manager:  manager,
		types:    types,
		resolver: res,
		logger:   logger,
	}
}

// resolveSiteID turns a tool's site argument into a registry site id. Empty
// means the default site. An exact id passes through; anything else is run
// through the detector so tools accept aliases, hostnames, or phrases like
// "the docs site". Text that matches nothing is returned as-is and fails
// later with an UnknownSiteError naming the configured sites.
func (s *Service) resolveSiteID(siteArg string) string {
	if siteArg == "" {
		return ""
	}
	reg := s.manager.Registry()
	if _, err := reg.Get(siteArg); err == nil {
		return siteArg
	}
	if detected := reg.DetectSite(siteArg); detected != "" {
		return detected
	}
	return siteArg
}

// client resolves the site argument and returns its authenticated client.
func (s *Service) client(ctx context.Context, siteArg string) (*wordpress.Client, string, error) {
	id := s.resolveSiteID(siteArg)
	client, err := s.manager.GetClient(ctx, id)
	if err != nil {
		return nil, id, err
	}
	return client, client.SiteID(), nil
}
