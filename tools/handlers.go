package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wordpress-mcp-server/internal/content"
	"github.com/olgasafonova/wordpress-mcp-server/metrics"
	"github.com/olgasafonova/wordpress-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete service methods.
type HandlerRegistry struct {
	service *content.Service
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(service *content.Service, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		service: service,
		logger:  logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Site tools
	case "ListSites":
		register(h, server, tool, spec, h.service.ListSites)
	case "TestSite":
		register(h, server, tool, spec, h.service.TestSite)
	case "DetectSite":
		register(h, server, tool, spec, h.service.DetectSite)

	// Discovery tools
	case "ListContentTypes":
		register(h, server, tool, spec, h.service.ListContentTypes)
	case "ListTaxonomies":
		register(h, server, tool, spec, h.service.ListTaxonomies)

	// Resolution tools
	case "FindBySlug":
		register(h, server, tool, spec, h.service.FindBySlug)
	case "FindByURL":
		register(h, server, tool, spec, h.service.FindByURL)

	// Content tools
	case "ListContent":
		register(h, server, tool, spec, h.service.ListContent)
	case "GetContent":
		register(h, server, tool, spec, h.service.GetContent)
	case "CreateContent":
		register(h, server, tool, spec, h.service.CreateContent)
	case "UpdateContent":
		register(h, server, tool, spec, h.service.UpdateContent)
	case "DeleteContent":
		register(h, server, tool, spec, h.service.DeleteContent)

	// Taxonomy term tools
	case "ListTerms":
		register(h, server, tool, spec, h.service.ListTerms)
	case "CreateTerm":
		register(h, server, tool, spec, h.service.CreateTerm)

	// Media tools
	case "ListMedia":
		register(h, server, tool, spec, h.service.ListMedia)
	case "GetMedia":
		register(h, server, tool, spec, h.service.GetMedia)

	// User tools
	case "ListUsers":
		register(h, server, tool, spec, h.service.ListUsers)
	case "GetUser":
		register(h, server, tool, spec, h.service.GetUser)

	// Comment tools
	case "ListComments":
		register(h, server, tool, spec, h.service.ListComments)
	case "CreateComment":
		register(h, server, tool, spec, h.service.CreateComment)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the service method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case content.TestSiteArgs:
		attrs = append(attrs, "site", a.Site)
	case content.DetectSiteArgs:
		attrs = append(attrs, "text_len", len(a.Text))
	case content.ListContentTypesArgs:
		attrs = append(attrs, "site", a.Site, "force_refresh", a.ForceRefresh)
	case content.ListTaxonomiesArgs:
		attrs = append(attrs, "site", a.Site)
	case content.FindBySlugArgs:
		attrs = append(attrs, "site", a.Site, "slug", a.Slug)
	case content.FindByURLArgs:
		attrs = append(attrs, "site", a.Site, "url", a.URL)
	case content.ListContentArgs:
		attrs = append(attrs, "site", a.Site, "content_type", a.ContentType, "search", a.Search)
	case content.GetContentArgs:
		attrs = append(attrs, "site", a.Site, "content_type", a.ContentType, "id", a.ID)
	case content.CreateContentArgs:
		attrs = append(attrs, "site", a.Site, "content_type", a.ContentType)
	case content.UpdateContentArgs:
		attrs = append(attrs, "site", a.Site, "content_type", a.ContentType, "id", a.ID)
	case content.DeleteContentArgs:
		attrs = append(attrs, "site", a.Site, "content_type", a.ContentType, "id", a.ID, "force", a.Force)
	case content.ListTermsArgs:
		attrs = append(attrs, "site", a.Site, "taxonomy", a.Taxonomy)
	case content.CreateTermArgs:
		attrs = append(attrs, "site", a.Site, "taxonomy", a.Taxonomy, "name", a.Name)
	case content.ListMediaArgs:
		attrs = append(attrs, "site", a.Site, "search", a.Search)
	case content.GetMediaArgs:
		attrs = append(attrs, "site", a.Site, "id", a.ID)
	case content.ListUsersArgs:
		attrs = append(attrs, "site", a.Site)
	case content.GetUserArgs:
		attrs = append(attrs, "site", a.Site, "id", a.ID)
	case content.ListCommentsArgs:
		attrs = append(attrs, "site", a.Site, "post_id", a.PostID)
	case content.CreateCommentArgs:
		attrs = append(attrs, "site", a.Site, "post_id", a.PostID)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case content.ListSitesResult:
		attrs = append(attrs, "sites", r.Count)
	case content.TestSiteResult:
		attrs = append(attrs, "success", r.Success)
	case content.DetectSiteResult:
		attrs = append(attrs, "found", r.Found, "site_id", r.SiteID)
	case content.ListContentTypesResult:
		attrs = append(attrs, "content_types", r.Count)
	case content.ListTaxonomiesResult:
		attrs = append(attrs, "taxonomies", r.Count)
	case content.FindResult:
		attrs = append(attrs, "found", r.Found, "content_type", r.ContentType)
	case content.ListContentResult:
		attrs = append(attrs, "items", r.Count, "endpoint", r.Endpoint)
	case content.DeleteContentResult:
		attrs = append(attrs, "deleted", r.Deleted)
	case content.ListTermsResult:
		attrs = append(attrs, "terms", r.Count)
	case content.CreateTermResult:
		attrs = append(attrs, "term_id", r.Term.ID)
	case content.ListMediaResult:
		attrs = append(attrs, "items", r.Count)
	case content.ListUsersResult:
		attrs = append(attrs, "users", r.Count)
	case content.ListCommentsResult:
		attrs = append(attrs, "comments", r.Count)
	case content.CreateCommentResult:
		attrs = append(attrs, "comment_id", r.Comment.ID)
	}

	h.logger.Info("Tool executed", attrs...)
}
