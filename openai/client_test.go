package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headerEcho records the headers of the last request it served and
// answers with a minimal successful model payload.
func headerEcho(got *http.Header) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[]}`))
	}
}

func TestConfigHeaderDerivation(t *testing.T) {
	cfg := Config{APIKey: "sk-test", Organization: "org-1"}

	h := cfg.headers()
	assert.Equal(t, "Bearer sk-test", h.Get("Authorization"))
	assert.Equal(t, "org-1", h.Get(organizationHeader))

	// Pure derivation: repeated calls yield the same set.
	assert.Equal(t, h, cfg.headers())
}

func TestConfigHeaderDerivationOmitsEmpty(t *testing.T) {
	h := Config{}.headers()
	assert.Empty(t, h.Get("Authorization"))
	assert.Empty(t, h.Get(organizationHeader))
}

func TestClientSendsDerivedHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(headerEcho(&got))
	defer srv.Close()

	c := New("sk-test", WithBaseURL(srv.URL+"/"), WithHeader("X-Trace", "abc"))
	_, err := c.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", got.Get("Authorization"))
	assert.Equal(t, "abc", got.Get("X-Trace"))
	assert.Empty(t, got.Get(organizationHeader))
}

func TestWithAPIKeyReturnsNewClient(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(headerEcho(&got))
	defer srv.Close()

	first := New("sk-first", WithBaseURL(srv.URL+"/"))
	second := first.WithAPIKey("sk-second")

	_, err := second.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-second", got.Get("Authorization"))

	// The original is untouched.
	_, err = first.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-first", got.Get("Authorization"))
	assert.Equal(t, "sk-first", first.Config().APIKey)
}

func TestWithOrganizationReturnsNewClient(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(headerEcho(&got))
	defer srv.Close()

	plain := New("sk-test", WithBaseURL(srv.URL+"/"))
	scoped := plain.WithOrganization("org-7")

	_, err := scoped.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-7", got.Get(organizationHeader))

	_, err = plain.ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Get(organizationHeader))
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_ORGANIZATION", "org-env")

	c := NewFromEnv()
	assert.Equal(t, "sk-env", c.Config().APIKey)
	assert.Equal(t, "org-env", c.Config().Organization)
}

func TestNewWithConfigDefaults(t *testing.T) {
	c := NewWithConfig(Config{APIKey: "sk-test"})
	assert.Equal(t, DefaultBaseURL, c.Config().BaseURL)
	assert.Equal(t, http.DefaultClient, c.Config().HTTPClient)
}

func TestHeaderTransportPerRequestHeadersWin(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(headerEcho(&got))
	defer srv.Close()

	tr := &headerTransport{headers: http.Header{
		"Authorization": {"Bearer default"},
		"X-Extra":       {"from-default"},
	}}
	hc := &http.Client{Transport: tr}

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer override")

	resp, err := hc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer override", got.Get("Authorization"))
	assert.Equal(t, "from-default", got.Get("X-Extra"))
}

func TestInvalidBaseURL(t *testing.T) {
	c := New("sk-test", WithBaseURL("::not a url"))

	_, err := c.ListModels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidURL))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening any more

	c := New("sk-test", WithBaseURL(srv.URL+"/"))
	_, err := c.ListModels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(headerEcho(new(http.Header)))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New("sk-test", WithBaseURL(srv.URL+"/"))
	_, err := c.ListModels(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.ErrorContains(t, err, "context canceled")
}
