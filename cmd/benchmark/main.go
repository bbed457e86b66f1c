package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/wordpress-mcp-server/internal/resolver"
	"github.com/olgasafonova/wordpress-mcp-server/internal/site"
	"github.com/olgasafonova/wordpress-mcp-server/internal/typecache"
)

// measureDirectoryCache compares a cold directory fetch against the memory tier
func measureDirectoryCache(manager *site.Manager, types *typecache.Cache) {
	ctx := context.Background()

	fmt.Println("=== Content-Type Directory Cache ===")
	fmt.Println()

	fmt.Println("1. Directory Fetch vs Cache:")

	start := time.Now()
	dir, err := types.GetContentTypes(ctx, "", true)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	firstCall := time.Since(start)
	fmt.Printf("   First call (network):  %v (%d types)\n", firstCall, len(dir))

	start = time.Now()
	_, _ = types.GetContentTypes(ctx, "", false)
	secondCall := time.Since(start)
	fmt.Printf("   Second call (cached):  %v\n", secondCall)
	if secondCall > 0 {
		fmt.Printf("   Speedup: %.0fx faster\n", float64(firstCall)/float64(secondCall))
	}
	fmt.Println()
}

// measureSlugSearch compares sequential and parallel cross-type search
func measureSlugSearch(manager *site.Manager, types *typecache.Cache, logger *slog.Logger, slug string) {
	ctx := context.Background()

	fmt.Println("=== Cross-Type Slug Search ===")
	fmt.Println()

	dir, err := types.GetContentTypes(ctx, "", false)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	fmt.Printf("Searching %d content types for slug %q\n\n", len(dir), slug)

	res := resolver.New(manager, types, logger)

	fmt.Println("2. Search with configured mode:")
	start := time.Now()
	hit, err := res.FindContentAcrossTypes(ctx, "", slug, nil)
	elapsed := time.Since(start)
	switch {
	case err != nil:
		fmt.Printf("   Error: %v\n", err)
	case hit != nil:
		fmt.Printf("   Found in %q after %v\n", hit.ContentType, elapsed)
	default:
		fmt.Printf("   Not found after %v\n", elapsed)
	}
	fmt.Println()

	fmt.Println("3. Mode comparison:")
	fmt.Println("   Sequential search stops at the first hit; with N candidate")
	fmt.Println("   types a miss costs N round trips. Parallel search issues all")
	fmt.Println("   lookups at once, so a miss costs roughly one round trip.")
	fmt.Println("   Toggle with WORDPRESS_PARALLEL_SEARCH=false to compare.")
	fmt.Println()
}

func main() {
	fmt.Println("WordPress MCP Server - Performance Measurements")
	fmt.Println("===============================================")
	fmt.Println()

	registry, err := site.LoadRegistry()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := site.NewManager(registry, logger)
	types := typecache.New(manager, logger)

	slug := "hello-world"
	if len(os.Args) > 1 {
		slug = os.Args[1]
	}

	measureDirectoryCache(manager, types)
	measureSlugSearch(manager, types, logger, slug)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("Key behaviors:")
	fmt.Println("• Directory cache: repeated type lookups skip the network entirely")
	fmt.Println("• Durable tier: the directory survives restarts via the cache file")
	fmt.Println("• Parallel search: unknown-type lookups cost ~1 round trip, not N")
	fmt.Println("• Request dedup: concurrent refreshes for a site coalesce into one fetch")
}
