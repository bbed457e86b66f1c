package wordpress

// ContentType is the metadata for one content type as reported by the
// wp/v2/types discovery endpoint.
type ContentType struct {
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	RestBase     string          `json:"rest_base"`
	Hierarchical bool            `json:"hierarchical"`
	Supports     map[string]bool `json:"supports,omitempty"`
	Taxonomies   []string        `json:"taxonomies,omitempty"`
}

// Taxonomy is the metadata for one taxonomy as reported by wp/v2/taxonomies.
type Taxonomy struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	RestBase     string   `json:"rest_base"`
	Hierarchical bool     `json:"hierarchical"`
	Types        []string `json:"types,omitempty"`
}

// Built-in content types whose endpoints never require discovery.
const (
	TypePost = "post"
	TypePage = "page"

	// TypeAttachment and TypeBlock exist in every directory but are never
	// directly addressable content for cross-type search.
	TypeAttachment = "attachment"
	TypeBlock      = "wp_block"
)
