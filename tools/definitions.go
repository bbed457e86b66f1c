package tools

// AllTools contains all tool specifications for the WordPress MCP server.
// Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// SITE TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_sites",
		Method:   "ListSites",
		Title:    "List Sites",
		Category: "sites",
		Description: `List every configured WordPress site with its id, URL, and aliases.

USE WHEN: User asks "which sites do you have", "what sites are configured", or you need a valid site id for another tool.

NOT FOR: Checking whether a site is reachable (use wp_test_site).

PARAMETERS: none.

RETURNS: Site ids, URLs, aliases, and which site is the default. Never contacts the network.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "wp_test_site",
		Method:   "TestSite",
		Title:    "Test Site Connection",
		Category: "sites",
		Description: `Check connectivity and credentials for one site.

USE WHEN: User asks "is the site up", "can you reach the blog", or another tool failed with a connection error.

NOT FOR: Listing configured sites (use wp_list_sites).

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)

RETURNS: success=true with the resolved URL, or success=false with the failure reason. Never errors outright.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_detect_site",
		Method:   "DetectSite",
		Title:    "Detect Site from Text",
		Category: "sites",
		Description: `Figure out which configured site a phrase or URL refers to.

USE WHEN: User mentions a site loosely ("the docs site", "blog.example.com") and you need its id.

NOT FOR: Resolving a content URL to a record (use wp_find_by_url, which detects the site itself).

PARAMETERS:
- text: Free text possibly mentioning a site (required)

RETURNS: The matching site id, or found=false when nothing matches. Matching checks hostnames first, then aliases, then ids.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// DISCOVERY TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_content_types",
		Method:   "ListContentTypes",
		Title:    "List Content Types",
		Category: "discovery",
		Description: `List the content types a site exposes, including custom post types.

USE WHEN: User asks "what content types does the site have", or you need a valid content_type value for wp_list_content / wp_find_by_slug.

NOT FOR: Listing taxonomies like categories (use wp_list_taxonomies).

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)
- force_refresh: Bypass the cache and re-discover (default false)

RETURNS: Each type's slug, name, REST endpoint, hierarchy flag, supported features, and attached taxonomies. Served from a cache with a 1 hour TTL unless force_refresh is set.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_list_taxonomies",
		Method:   "ListTaxonomies",
		Title:    "List Taxonomies",
		Category: "discovery",
		Description: `List the taxonomies a site exposes, including custom ones.

USE WHEN: User asks "what categories or tags exist" at the schema level, or you need a valid taxonomy value for wp_list_terms.

NOT FOR: Listing the terms inside a taxonomy (use wp_list_terms).

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)

RETURNS: Each taxonomy's slug, name, REST endpoint, hierarchy flag, and the content types it applies to.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// RESOLUTION TOOLS
	// ==========================================================================
	{
		Name:     "wp_find_by_slug",
		Method:   "FindBySlug",
		Title:    "Find Content by Slug",
		Category: "resolve",
		Description: `Find a content item by its slug without knowing its content type.

USE WHEN: User gives a slug ("find api-guide") or you know the identifier but not whether it's a post, page, or custom type.

NOT FOR: Resolving a full URL (use wp_find_by_url). Not for full-text search (use wp_list_content with search).

PARAMETERS:
- slug: URL-safe identifier (required)
- site: Site id, alias, or hostname (default: the default site)
- content_types: Candidate type slugs in priority order (default: all discovered types)

RETURNS: The matching record and its content type, or found=false with the list of types searched.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_find_by_url",
		Method:   "FindByURL",
		Title:    "Find Content by URL",
		Category: "resolve",
		Description: `Resolve a full content URL to its underlying record.

USE WHEN: User pastes a URL ("what's at https://site.com/docs/api-guide/"). The site is detected from the URL's hostname; path segments steer which content types are tried first.

NOT FOR: Plain slugs without a URL (use wp_find_by_slug).

PARAMETERS:
- url: Full URL of the content item (required)
- site: Override the detected site (optional)

RETURNS: The matching record, its content type, the extracted slug, and path hints, or found=false with the types searched.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// CONTENT TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_content",
		Method:   "ListContent",
		Title:    "List Content",
		Category: "content",
		Description: `List items of one content type, with optional full-text search.

USE WHEN: User asks "show recent posts", "list the products", "search posts for X".

NOT FOR: Looking up one item by slug or URL (use wp_find_by_slug / wp_find_by_url). Not for media files (use wp_list_media).

PARAMETERS:
- content_type: Type slug, e.g. post, page, product (required)
- site: Site id, alias, or hostname (default: the default site)
- search: Full-text filter (optional)
- status: publish, draft, etc. (optional)
- page, per_page: Pagination (default 10 per page, max 100)

RETURNS: Raw WordPress records plus the REST endpoint they came from. Custom types work without configuration.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_get_content",
		Method:   "GetContent",
		Title:    "Get Content",
		Category: "content",
		Description: `Fetch one content item by its numeric id.

USE WHEN: You already have an id from a previous list or find call and need the full record.

NOT FOR: Lookups by slug or URL (use the resolve tools).

PARAMETERS:
- content_type: Type slug (required)
- id: Numeric content id (required)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The full raw record.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_create_content",
		Method:   "CreateContent",
		Title:    "Create Content",
		Category: "content",
		Description: `Create a new item of any content type.

USE WHEN: User says "write a post about X", "create a draft page", "add a product".

NOT FOR: Editing existing items (use wp_update_content).

PARAMETERS:
- content_type: Type slug (required)
- title: Item title (required)
- content: HTML body (optional)
- excerpt, slug: Optional
- status: publish, draft, pending, private (default draft)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The created record as the site stored it. New items default to draft so nothing publishes by accident.`,
		OpenWorld: true,
	},
	{
		Name:     "wp_update_content",
		Method:   "UpdateContent",
		Title:    "Update Content",
		Category: "content",
		Description: `Update fields of an existing content item.

USE WHEN: User says "change the title of post 42", "publish the draft", "fix the slug".

NOT FOR: Creating new items (use wp_create_content).

PARAMETERS:
- content_type: Type slug (required)
- id: Numeric content id (required)
- title, content, excerpt, slug, status: Fields to change; omitted fields are untouched
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The updated record.`,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_delete_content",
		Method:   "DeleteContent",
		Title:    "Delete Content",
		Category: "content",
		Description: `Move a content item to trash, or delete it permanently.

USE WHEN: User explicitly asks to delete or trash an item.

NOT FOR: Unpublishing (use wp_update_content with status=draft).

PARAMETERS:
- content_type: Type slug (required)
- id: Numeric content id (required)
- force: Skip trash and delete permanently (default false)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The removed record. Without force the item is recoverable from trash.`,
		Destructive: true,
		OpenWorld:   true,
	},

	// ==========================================================================
	// TAXONOMY TERM TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_terms",
		Method:   "ListTerms",
		Title:    "List Taxonomy Terms",
		Category: "terms",
		Description: `List the terms of one taxonomy.

USE WHEN: User asks "what categories exist", "list the tags", "show product categories".

NOT FOR: Listing taxonomy definitions (use wp_list_taxonomies).

PARAMETERS:
- taxonomy: Taxonomy slug, e.g. category, post_tag (required)
- site: Site id, alias, or hostname (default: the default site)
- search: Name filter (optional)
- per_page: Terms per page (default 10, max 100)

RETURNS: Term ids, names, slugs, parents, and usage counts.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_create_term",
		Method:   "CreateTerm",
		Title:    "Create Taxonomy Term",
		Category: "terms",
		Description: `Create a new term in a taxonomy.

USE WHEN: User says "add a category called X", "create a tag".

NOT FOR: Assigning terms to content (set them via wp_update_content).

PARAMETERS:
- taxonomy: Taxonomy slug (required)
- name: Term name (required)
- slug, description: Optional
- parent: Parent term id for hierarchical taxonomies (optional)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The created term with its assigned id.`,
		OpenWorld: true,
	},

	// ==========================================================================
	// MEDIA TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_media",
		Method:   "ListMedia",
		Title:    "List Media",
		Category: "media",
		Description: `List items in the site's media library.

USE WHEN: User asks "what images are uploaded", "find the logo file".

NOT FOR: Posts or pages (use wp_list_content).

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)
- search: Title filter (optional)
- page, per_page: Pagination (default 10 per page, max 100)

RETURNS: Media ids, titles, source URLs, MIME types, and alt text.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_get_media",
		Method:   "GetMedia",
		Title:    "Get Media Item",
		Category: "media",
		Description: `Fetch one media item by id.

USE WHEN: You have a media id (e.g. a post's featured_media field) and need its URL or details.

PARAMETERS:
- id: Numeric media id (required)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The media item with its source URL, MIME type, and alt text.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// USER TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_users",
		Method:   "ListUsers",
		Title:    "List Users",
		Category: "users",
		Description: `List the site's users.

USE WHEN: User asks "who are the authors", "list site users", or you need an author id.

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)
- search: Name filter (optional)
- per_page: Users per page (default 10, max 100)

RETURNS: User ids, display names, slugs, and profile links. Fields depend on the authenticated user's permissions.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_get_user",
		Method:   "GetUser",
		Title:    "Get User",
		Category: "users",
		Description: `Fetch one user by id.

USE WHEN: You have an author id from a content record and need the author's details.

PARAMETERS:
- id: Numeric user id (required)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The user's display name, slug, description, and profile link.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// COMMENT TOOLS
	// ==========================================================================
	{
		Name:     "wp_list_comments",
		Method:   "ListComments",
		Title:    "List Comments",
		Category: "comments",
		Description: `List comments, optionally scoped to one content item.

USE WHEN: User asks "what are people saying about post X", "show recent comments", "any comments awaiting moderation".

PARAMETERS:
- site: Site id, alias, or hostname (default: the default site)
- post_id: Limit to one content item (optional)
- status: approve, hold, spam, trash (optional)
- page, per_page: Pagination (default 10 per page, max 100)

RETURNS: Comment ids, authors, rendered text, dates, and statuses.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wp_create_comment",
		Method:   "CreateComment",
		Title:    "Create Comment",
		Category: "comments",
		Description: `Post a comment on a content item as the authenticated user.

USE WHEN: User explicitly asks to reply to or comment on an item.

PARAMETERS:
- post_id: Content item to comment on (required)
- content: Comment text (required)
- site: Site id, alias, or hostname (default: the default site)

RETURNS: The created comment with its id and moderation status.`,
		OpenWorld: true,
	},
}

// ToolsByCategory returns all tool specs in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			specs = append(specs, spec)
		}
	}
	return specs
}
