package httputil

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/typetower/pkg/errors"
	"github.com/matzehuels/typetower/pkg/observability"
)

const httpTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client with a standard timeout for
// document requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client fetches remote documents (samples, schemas) with caching and
// retry. It is the HTTP layer behind URL inputs on the command line.
type Client struct {
	http  *http.Client
	cache *Cache
}

// NewClient creates a Client backed by the given cache. The cache may be
// nil, in which case every fetch goes to the network.
func NewClient(cache *Cache) *Client {
	return &Client{http: NewHTTPClient(), cache: cache}
}

// FetchDocument retrieves the raw body at rawURL, consulting the cache
// first unless refresh is true. Transient failures (network errors, 5xx
// responses) are retried with exponential backoff; a 404 maps to a
// not-found error immediately.
func (c *Client) FetchDocument(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}

	key := "doc:" + rawURL
	var body []byte
	if !refresh && c.cache != nil {
		if ok, _ := c.cache.Get(key, &body); ok {
			observability.Cache().OnCacheHit(ctx, "document")
			return body, nil
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		body, fetchErr = c.get(ctx, rawURL)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, body); err == nil {
			observability.Cache().OnCacheSet(ctx, "document", len(body))
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", rawURL)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeSchemaNotFound, "document not found: %s", rawURL)
	case resp.StatusCode >= 500:
		return nil, &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "server error %d from %s", resp.StatusCode, rawURL)}
	case resp.StatusCode != http.StatusOK:
		return nil, errors.New(errors.ErrCodeNetwork, "unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}
