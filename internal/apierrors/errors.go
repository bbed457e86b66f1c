// Package apierrors provides shared error types for the WordPress MCP server.
package apierrors

import (
	"fmt"
	"strings"
)

// UnknownSiteError indicates a site id that is not present in the registry.
type UnknownSiteError struct {
	SiteID string
	Known  []string // configured site ids, for the error message
}

func (e *UnknownSiteError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("unknown site %q (configured sites: %s)", e.SiteID, strings.Join(e.Known, ", "))
	}
	return fmt.Sprintf("unknown site %q", e.SiteID)
}

// NoDefaultSiteError indicates that no site id was given and no default is configured.
type NoDefaultSiteError struct{}

func (e *NoDefaultSiteError) Error() string {
	return "no site specified and no default site configured"
}

// SiteConnectionError indicates the connectivity probe for a site failed.
type SiteConnectionError struct {
	SiteID string
	URL    string
	Err    error
}

func (e *SiteConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to site %q at %s: %v", e.SiteID, e.URL, e.Err)
}

func (e *SiteConnectionError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates a slug or URL did not resolve to any content.
type NotFoundError struct {
	SiteID        string
	Slug          string
	URL           string   // set when the lookup started from a URL
	SearchedTypes []string // content types that were searched
}

func (e *NotFoundError) Error() string {
	subject := "slug " + e.Slug
	if e.URL != "" {
		subject = fmt.Sprintf("URL %s (slug %q)", e.URL, e.Slug)
	}
	if len(e.SearchedTypes) > 0 {
		return fmt.Sprintf("no content found for %s on site %q (searched types: %s)",
			subject, e.SiteID, strings.Join(e.SearchedTypes, ", "))
	}
	return fmt.Sprintf("no content found for %s on site %q", subject, e.SiteID)
}

// RESTError carries a non-2xx response from the WordPress REST API.
type RESTError struct {
	StatusCode int
	Code       string // WordPress error code, e.g. "rest_post_invalid_id"
	Message    string
}

func (e *RESTError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("WordPress API error %d [%s]: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("WordPress API error %d: %s", e.StatusCode, e.Message)
}

// ValidationError indicates invalid tool arguments.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != nil && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%v: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsUnknownSite returns true if the error is an UnknownSiteError.
func IsUnknownSite(err error) bool {
	_, ok := err.(*UnknownSiteError)
	return ok
}
