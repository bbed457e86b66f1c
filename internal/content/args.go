package content

import (
	"encoding/json"

	"github.com/olgasafonova/wordpress-mcp-server/internal/wordpress"
)

// Rendered is WordPress's wrapper for rendered fields like titles and bodies.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// ListSitesArgs has no parameters; all configured sites are listed.
type ListSitesArgs struct{}

// SiteSummary describes one configured site without exposing credentials.
type SiteSummary struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Aliases []string `json:"aliases,omitempty"`
	Default bool     `json:"default"`
}

// ListSitesResult lists the configured sites.
type ListSitesResult struct {
	Sites       []SiteSummary `json:"sites"`
	DefaultSite string        `json:"default_site,omitempty"`
	Count       int           `json:"count"`
}

// TestSiteArgs identifies the site to test.
type TestSiteArgs struct {
	Site string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// TestSiteResult reports connectivity to a site.
type TestSiteResult struct {
	SiteID  string `json:"site_id"`
	URL     string `json:"url,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DetectSiteArgs carries free text that may refer to a configured site.
type DetectSiteArgs struct {
	Text string `json:"text" jsonschema:"required" jsonschema_description:"Free text that may mention a site by hostname, alias, or id"`
}

// DetectSiteResult reports which site the text refers to, if any.
type DetectSiteResult struct {
	SiteID string `json:"site_id,omitempty"`
	Found  bool   `json:"found"`
}

// ListContentTypesArgs selects a site and optionally forces a directory refresh.
type ListContentTypesArgs struct {
	Site         string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	ForceRefresh bool   `json:"force_refresh,omitempty" jsonschema_description:"Bypass both cache tiers and re-fetch from the site"`
}

// ListContentTypesResult lists the discovered content types.
type ListContentTypesResult struct {
	ContentTypes []wordpress.ContentType `json:"content_types"`
	Count        int                     `json:"count"`
}

// ListTaxonomiesArgs selects a site.
type ListTaxonomiesArgs struct {
	Site string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// ListTaxonomiesResult lists the discovered taxonomies.
type ListTaxonomiesResult struct {
	Taxonomies []wordpress.Taxonomy `json:"taxonomies"`
	Count      int                  `json:"count"`
}

// FindBySlugArgs searches content types for an exact slug match.
type FindBySlugArgs struct {
	Slug         string   `json:"slug" jsonschema:"required" jsonschema_description:"URL-safe content identifier to search for"`
	Site         string   `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	ContentTypes []string `json:"content_types,omitempty" jsonschema_description:"Candidate content-type slugs to search, in priority order. Omit to search all discovered types"`
}

// FindByURLArgs resolves a full content URL to a record.
type FindByURLArgs struct {
	URL  string `json:"url" jsonschema:"required" jsonschema_description:"Full URL of the content item"`
	Site string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit to detect the site from the URL"`
}

// FindResult is the outcome of a slug or URL resolution.
type FindResult struct {
	Found         bool            `json:"found"`
	ContentType   string          `json:"content_type,omitempty"`
	Content       json.RawMessage `json:"content,omitempty"`
	Slug          string          `json:"slug,omitempty"`
	PathHints     []string        `json:"path_hints,omitempty"`
	SearchedTypes []string        `json:"searched_types,omitempty"`
	Message       string          `json:"message,omitempty"`
}

// ListContentArgs lists items of one content type.
type ListContentArgs struct {
	ContentType string `json:"content_type" jsonschema:"required" jsonschema_description:"Content-type slug, e.g. post, page, or a custom type"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	Search      string `json:"search,omitempty" jsonschema_description:"Full-text search filter"`
	Status      string `json:"status,omitempty" jsonschema_description:"Filter by status, e.g. publish, draft"`
	Page        int    `json:"page,omitempty" jsonschema_description:"Result page, starting at 1"`
	PerPage     int    `json:"per_page,omitempty" jsonschema_description:"Items per page (default 10, max 100)"`
}

// ListContentResult carries the raw items returned by the site.
type ListContentResult struct {
	ContentType string            `json:"content_type"`
	Endpoint    string            `json:"endpoint"`
	Items       []json.RawMessage `json:"items"`
	Count       int               `json:"count"`
}

// GetContentArgs fetches one item by numeric id.
type GetContentArgs struct {
	ContentType string `json:"content_type" jsonschema:"required" jsonschema_description:"Content-type slug"`
	ID          int    `json:"id" jsonschema:"required" jsonschema_description:"Numeric content id"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// GetContentResult carries one raw content record.
type GetContentResult struct {
	ContentType string          `json:"content_type"`
	Content     json.RawMessage `json:"content"`
}

// CreateContentArgs creates a new item of one content type.
type CreateContentArgs struct {
	ContentType string `json:"content_type" jsonschema:"required" jsonschema_description:"Content-type slug"`
	Title       string `json:"title" jsonschema:"required" jsonschema_description:"Item title"`
	Content     string `json:"content,omitempty" jsonschema_description:"Item body (HTML)"`
	Excerpt     string `json:"excerpt,omitempty"`
	Slug        string `json:"slug,omitempty" jsonschema_description:"Explicit slug; generated from the title when omitted"`
	Status      string `json:"status,omitempty" jsonschema_description:"publish, draft, pending, or private (default draft)"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// UpdateContentArgs updates fields of an existing item. Empty fields are
// left untouched.
type UpdateContentArgs struct {
	ContentType string `json:"content_type" jsonschema:"required" jsonschema_description:"Content-type slug"`
	ID          int    `json:"id" jsonschema:"required" jsonschema_description:"Numeric content id"`
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Status      string `json:"status,omitempty"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// MutationResult carries the record as the site returned it after a write.
type MutationResult struct {
	ContentType string          `json:"content_type"`
	Content     json.RawMessage `json:"content"`
}

// DeleteContentArgs deletes an item.
type DeleteContentArgs struct {
	ContentType string `json:"content_type" jsonschema:"required" jsonschema_description:"Content-type slug"`
	ID          int    `json:"id" jsonschema:"required" jsonschema_description:"Numeric content id"`
	Force       bool   `json:"force,omitempty" jsonschema_description:"Bypass trash and delete permanently"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// DeleteContentResult reports the deletion outcome.
type DeleteContentResult struct {
	ContentType string          `json:"content_type"`
	Deleted     bool            `json:"deleted"`
	Content     json.RawMessage `json:"content,omitempty"`
}

// Term is one taxonomy term.
type Term struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Count       int    `json:"count"`
}

// ListTermsArgs lists terms of one taxonomy.
type ListTermsArgs struct {
	Taxonomy string `json:"taxonomy" jsonschema:"required" jsonschema_description:"Taxonomy slug, e.g. category, post_tag, or a custom taxonomy"`
	Site     string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	Search   string `json:"search,omitempty"`
	PerPage  int    `json:"per_page,omitempty" jsonschema_description:"Terms per page (default 10, max 100)"`
}

// ListTermsResult lists taxonomy terms.
type ListTermsResult struct {
	Taxonomy string `json:"taxonomy"`
	Terms    []Term `json:"terms"`
	Count    int    `json:"count"`
}

// CreateTermArgs creates a taxonomy term.
type CreateTermArgs struct {
	Taxonomy    string `json:"taxonomy" jsonschema:"required" jsonschema_description:"Taxonomy slug"`
	Name        string `json:"name" jsonschema:"required" jsonschema_description:"Term name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Parent      int    `json:"parent,omitempty" jsonschema_description:"Parent term id, for hierarchical taxonomies"`
	Site        string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// CreateTermResult carries the created term.
type CreateTermResult struct {
	Taxonomy string `json:"taxonomy"`
	Term     Term   `json:"term"`
}

// MediaItem is one entry from the media library.
type MediaItem struct {
	ID        int      `json:"id"`
	Title     Rendered `json:"title"`
	SourceURL string   `json:"source_url"`
	MimeType  string   `json:"mime_type,omitempty"`
	AltText   string   `json:"alt_text,omitempty"`
	Date      string   `json:"date,omitempty"`
}

// ListMediaArgs lists media library items.
type ListMediaArgs struct {
	Site    string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	Search  string `json:"search,omitempty"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty" jsonschema_description:"Items per page (default 10, max 100)"`
}

// ListMediaResult lists media items.
type ListMediaResult struct {
	Items []MediaItem `json:"items"`
	Count int         `json:"count"`
}

// GetMediaArgs fetches one media item.
type GetMediaArgs struct {
	ID   int    `json:"id" jsonschema:"required" jsonschema_description:"Numeric media id"`
	Site string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// GetMediaResult carries one media item.
type GetMediaResult struct {
	Item MediaItem `json:"item"`
}

// User is one site user.
type User struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// ListUsersArgs lists site users.
type ListUsersArgs struct {
	Site    string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	Search  string `json:"search,omitempty"`
	PerPage int    `json:"per_page,omitempty" jsonschema_description:"Users per page (default 10, max 100)"`
}

// ListUsersResult lists users.
type ListUsersResult struct {
	Users []User `json:"users"`
	Count int    `json:"count"`
}

// GetUserArgs fetches one user.
type GetUserArgs struct {
	ID   int    `json:"id" jsonschema:"required" jsonschema_description:"Numeric user id"`
	Site string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// GetUserResult carries one user.
type GetUserResult struct {
	User User `json:"user"`
}

// Comment is one comment on a content item.
type Comment struct {
	ID         int      `json:"id"`
	PostID     int      `json:"post"`
	AuthorName string   `json:"author_name"`
	Content    Rendered `json:"content"`
	Date       string   `json:"date,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// ListCommentsArgs lists comments, optionally scoped to one content item.
type ListCommentsArgs struct {
	Site    string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
	PostID  int    `json:"post_id,omitempty" jsonschema_description:"Limit to comments on one content item"`
	Status  string `json:"status,omitempty" jsonschema_description:"approve, hold, spam, or trash"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty" jsonschema_description:"Comments per page (default 10, max 100)"`
}

// ListCommentsResult lists comments.
type ListCommentsResult struct {
	Comments []Comment `json:"comments"`
	Count    int       `json:"count"`
}

// CreateCommentArgs posts a comment on a content item.
type CreateCommentArgs struct {
	PostID  int    `json:"post_id" jsonschema:"required" jsonschema_description:"Content item to comment on"`
	Content string `json:"content" jsonschema:"required" jsonschema_description:"Comment text"`
	Site    string `json:"site,omitempty" jsonschema_description:"Site id, alias, or hostname. Omit for the default site"`
}

// CreateCommentResult carries the created comment.
type CreateCommentResult struct {
	Comment Comment `json:"comment"`
}
