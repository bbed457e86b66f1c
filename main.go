// WordPress MCP Server - A Model Context Protocol server for WordPress sites
// Provides tools for discovering content types, resolving slugs and URLs, and
// managing content across multiple configured sites
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wordpress-mcp-server/internal/content"
	"github.com/olgasafonova/wordpress-mcp-server/internal/resolver"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/typecache"
	"github.com/olgasafonova/wordpress-mcp-server/tools"
	"github.com/olgasafonova/wordpress-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "wordpress-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `WordPress MCP Server provides tools for working with one or more WordPress sites over the REST API.

Sites are configured via environment variables and addressed by id or alias; every tool takes an optional "site" argument and falls back to the default site.

Start with wp_list_sites to see what is configured. Use wp_list_content_types to discover a site's content types (including custom post types) before listing or creating content. To locate content from a slug or a pasted URL, use wp_find_by_slug or wp_find_by_url - they search across content types so you don't need to know whether something is a post, page, or custom type.

Configure via environment variables:
- WORDPRESS_1_URL / WORDPRESS_1_USERNAME / WORDPRESS_1_PASSWORD: first site (slots 1-10)
- WORDPRESS_1_ID / WORDPRESS_1_ALIASES / WORDPRESS_1_DEFAULT: optional id, aliases, default flag
- WORDPRESS_API_URL / WORDPRESS_USERNAME / WORDPRESS_PASSWORD: single-site fallback
- WORDPRESS_CACHE_DIR, WORDPRESS_CACHE_TTL, WORDPRESS_PARALLEL_SEARCH, WORDPRESS_TIMEOUT: tuning`

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load site registry from environment
	registry, err := site.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load site configuration: %v", err)
	}

	// Initialize tracing
	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	// Optional Prometheus endpoint; the MCP transport owns stdio, so
	// metrics get their own listener when requested.
	if addr := os.Getenv("WORDPRESS_METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("Serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	// Wire the components: manager -> directory cache -> resolver -> service
	manager := site.NewManager(registry, logger)
	types := typecache.New(manager, logger)
	res := resolver.New(manager, types, logger)
	service := content.NewService(manager, types, res, logger)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	// Register all tools
	handlers := tools.NewHandlerRegistry(service, logger)
	handlers.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting WordPress MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"sites", len(registry.IDs()),
		"default_site", registry.DefaultID(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
