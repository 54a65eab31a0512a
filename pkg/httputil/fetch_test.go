package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/typetower/pkg/errors"
)

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := NewClient(nil)
	body, err := c.FetchDocument(context.Background(), srv.URL, false)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if string(body) != `{"ok": true}` {
		t.Errorf("body = %q", body)
	}
}

func TestFetchDocumentUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c := NewClient(cache)
	ctx := context.Background()

	for range 3 {
		if _, err := c.FetchDocument(ctx, srv.URL, false); err != nil {
			t.Fatalf("FetchDocument: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}

	if _, err := c.FetchDocument(ctx, srv.URL, true); err != nil {
		t.Fatalf("FetchDocument(refresh): %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("refresh did not bypass cache: %d hits", got)
	}
}

func TestFetchDocumentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(nil).FetchDocument(context.Background(), srv.URL, false)
	if !errors.Is(err, errors.ErrCodeSchemaNotFound) {
		t.Errorf("err = %v, want SCHEMA_NOT_FOUND", err)
	}
}

func TestFetchDocumentRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("eventually"))
	}))
	defer srv.Close()

	c := &Client{http: NewHTTPClient()}
	ctx := context.Background()

	var body []byte
	err := Retry(ctx, 3, time.Millisecond, func() error {
		var fetchErr error
		body, fetchErr = c.get(ctx, srv.URL)
		return fetchErr
	})
	if err != nil {
		t.Fatalf("retried fetch failed: %v", err)
	}
	if string(body) != "eventually" {
		t.Errorf("body = %q", body)
	}
	if hits.Load() != 3 {
		t.Errorf("server hit %d times, want 3", hits.Load())
	}
}

func TestFetchDocumentInvalidURL(t *testing.T) {
	_, err := NewClient(nil).FetchDocument(context.Background(), "not a url", false)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return errors.New(errors.ErrCodeInvalidInput, "permanent")
	})
	if err == nil {
		t.Fatal("Retry = nil error")
	}
	if calls != 1 {
		t.Errorf("permanent error retried %d times", calls)
	}
}
