package openai

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// Client issues requests against the OpenAI API.
//
// A Client is an immutable value: WithAPIKey and WithOrganization return
// new Clients and leave the receiver untouched, so a Client may be shared
// across goroutines without synchronization. Concurrent calls are
// independent: each owns its request, and each stream owns its buffer.
type Client struct {
	config  Config
	handler *http.Client
}

// Option configures a Client at construction time.
type Option func(*Config)

// WithBaseURL overrides the API base URL, e.g. for a proxy or a mock.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.BaseURL = u
	}
}

// WithHTTPClient supplies the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = hc
	}
}

// WithLogger enables debug logging of each dispatch.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithHeader adds an extra header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// New creates a Client authorized with the given API key.
func New(apiKey string, opts ...Option) *Client {
	cfg := Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return build(cfg)
}

// NewFromEnv creates a Client from the OPENAI_API_KEY and
// OPENAI_ORGANIZATION environment variables. Unset variables leave the
// corresponding credential empty.
func NewFromEnv(opts ...Option) *Client {
	opts = append([]Option{func(c *Config) {
		c.Organization = os.Getenv("OPENAI_ORGANIZATION")
	}}, opts...)
	return New(os.Getenv("OPENAI_API_KEY"), opts...)
}

// NewWithConfig creates a Client from a fully specified Config.
func NewWithConfig(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return build(cfg)
}

// build pairs a Config with a transport whose default headers are derived
// from it. Every credential change goes through build again, so the
// transport's headers and the Config can never drift apart.
func build(cfg Config) *Client {
	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	handler := &http.Client{
		Transport:     &headerTransport{base: base.Transport, headers: cfg.headers()},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
	return &Client{config: cfg, handler: handler}
}

// WithAPIKey returns a new Client authorized with key. The receiver is not
// modified.
func (c *Client) WithAPIKey(key string) *Client {
	cfg := c.config
	cfg.APIKey = key
	return build(cfg)
}

// WithOrganization returns a new Client that sends the organization header
// with every request. The receiver is not modified.
func (c *Client) WithOrganization(org string) *Client {
	cfg := c.config
	cfg.Organization = org
	return build(cfg)
}

// Config returns the configuration the Client was built with.
func (c *Client) Config() Config {
	return c.config
}

// headerTransport injects the derived default headers into every request.
// Per-request headers win over defaults.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.base
	if rt == nil {
		rt = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	for key, values := range t.headers {
		if clone.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			clone.Header.Add(key, v)
		}
	}
	return rt.RoundTrip(clone)
}
