// Package httputil provides HTTP caching, retry, and document fetching.
//
// # Overview
//
// Remote inputs (sample documents, JSON Schemas referenced by URL) are
// fetched through [Client], which layers three concerns:
//
//   - [Cache]: file-based response caching with TTL expiry
//   - [Retry]: exponential backoff, retrying only [RetryableError]s
//   - observability hooks for requests, responses, and cache activity
//
// # Usage
//
//	cache, _ := httputil.NewCache("", 24*time.Hour)
//	client := httputil.NewClient(cache)
//	body, err := client.FetchDocument(ctx, url, false)
//
// Pass refresh=true to bypass the cache for fresh data.
package httputil
