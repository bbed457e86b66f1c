package site

import (
	"net/url"
	"strings"
)

// DetectSite infers which configured site a piece of free text refers to.
// Matching is case-insensitive substring containment, first match wins:
// site URL hostnames, then aliases, then site ids. Returns "" when nothing
// matches or the text is empty. Never performs I/O.
func (r *Registry) DetectSite(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)

	for _, s := range r.sites {
		u, err := url.Parse(s.URL)
		if err != nil || u.Hostname() == "" {
			// Malformed site URLs don't abort the scan.
			continue
		}
		if strings.Contains(lower, strings.ToLower(u.Hostname())) {
			return s.ID
		}
	}

	for _, s := range r.sites {
		for _, alias := range s.Aliases {
			if strings.Contains(lower, strings.ToLower(alias)) {
				return s.ID
			}
		}
	}

	for _, s := range r.sites {
		if strings.Contains(lower, strings.ToLower(s.ID)) {
			return s.ID
		}
	}

	return ""
}
