package openai

import (
	"net/http"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the base against which resource paths are resolved.
const DefaultBaseURL = "https://api.openai.com/v1/"

// organizationHeader selects the billing organization for accounts that
// belong to more than one.
const organizationHeader = "OpenAI-Organization"

// Config is everything needed to authorize against the API. It is an
// immutable value once attached to a Client: credential changes go through
// Client.WithAPIKey / Client.WithOrganization, which build a fresh
// Config+Client pair.
type Config struct {
	// APIKey authenticates requests. Empty means no Authorization header.
	APIKey string

	// Organization is the optional organization ID sent with each request.
	Organization string

	// BaseURL is the absolute URL resource paths are joined against.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient supplies the underlying transport. Timeouts, redirects
	// and connection pooling are its responsibility. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Headers are extra headers sent with every request.
	Headers http.Header

	// Logger receives a debug event per dispatch. Defaults to a no-op.
	Logger zerolog.Logger
}

// headers derives the default header set from the configuration. The
// derivation is a pure function: the same Config always yields the same
// header set.
func (c Config) headers() http.Header {
	h := make(http.Header)
	for key, values := range c.Headers {
		for _, v := range values {
			h.Add(key, v)
		}
	}
	if c.APIKey != "" {
		h.Set("Authorization", "Bearer "+c.APIKey)
	}
	if c.Organization != "" {
		h.Set(organizationHeader, c.Organization)
	}
	return h
}
