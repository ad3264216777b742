package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestFetcherLinks tests link extraction from fetched pages.
func TestFetcherLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts absolute and relative links", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>
				<a href="/about">About Us</a>
				<a href="https://partner.com/x">Partner</a>
			</body></html>`))
		}))
		defer srv.Close()

		f := New()
		links, err := f.Links(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}
		if links[0].URL != srv.URL+"/about" {
			t.Errorf("expected relative href resolved to %q, got %q", srv.URL+"/about", links[0].URL)
		}
		if links[0].Anchor != "About Us" {
			t.Errorf("expected anchor 'About Us', got %q", links[0].Anchor)
		}
		if links[1].Key != "https://partner.com/x" {
			t.Errorf("expected normalized key, got %q", links[1].Key)
		}
	})

	t.Run("collapses anchor whitespace and nested markup", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<a href="/x">  About
				<b>Our   Team</b> </a>`))
		}))
		defer srv.Close()

		links, err := New().Links(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if links[0].Anchor != "About Our Team" {
			t.Errorf("expected collapsed anchor text, got %q", links[0].Anchor)
		}
	})

	t.Run("anchor without text yields empty string", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<a href="/x"><img src="logo.png"></a>`))
		}))
		defer srv.Close()

		links, err := New().Links(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if links[0].Anchor != "" {
			t.Errorf("expected empty anchor, got %q", links[0].Anchor)
		}
	})

	t.Run("anchors without href are skipped", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<a name="top">Top</a><a href="/real">Real</a>`))
		}))
		defer srv.Close()

		links, err := New().Links(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
	})

	t.Run("follows redirects and resolves against final URL", func(t *testing.T) {
		t.Parallel()

		final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<a href="/dest">Dest</a>`))
		}))
		defer final.Close()

		redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, final.URL, http.StatusFound)
		}))
		defer redirecting.Close()

		links, err := New().Links(context.Background(), redirecting.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if links[0].URL != final.URL+"/dest" {
			t.Errorf("expected href resolved against final URL, got %q", links[0].URL)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := New().Links(context.Background(), srv.URL)
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("expected ErrUnexpectedStatus, got %v", err)
		}
	})

	t.Run("connection failure is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed before use

		_, err := New().Links(context.Background(), srv.URL)
		if err == nil {
			t.Error("expected error for unreachable server")
		}
	})

	t.Run("non-HTML body yields zero links", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte{0x00, 0x01, 0x02, 0x03})
		}))
		defer srv.Close()

		links, err := New().Links(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 0 {
			t.Errorf("expected 0 links, got %d", len(links))
		}
	})

	t.Run("sends identifying user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		if _, err := New(WithUserAgent("linkaudit-test/1.0")).Links(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotUA != "linkaudit-test/1.0" {
			t.Errorf("expected custom user agent, got %q", gotUA)
		}
	})

	t.Run("timeout is enforced", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		f := New(WithTimeout(50 * time.Millisecond))
		start := time.Now()
		_, err := f.Links(context.Background(), srv.URL)
		if err == nil {
			t.Error("expected timeout error")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("timeout not enforced, took %v", elapsed)
		}
	})
}

// TestFetcherOptions tests option defaults and overrides.
func TestFetcherOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f := New()
		if f.userAgent != DefaultUserAgent {
			t.Errorf("expected default user agent, got %q", f.userAgent)
		}
		if f.maxBodySize != DefaultMaxBodySize {
			t.Errorf("expected default max body size, got %d", f.maxBodySize)
		}
		if f.client.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", f.client.Timeout)
		}
	})

	t.Run("non-positive overrides ignored", func(t *testing.T) {
		t.Parallel()

		f := New(WithTimeout(0), WithMaxBodySize(-1), WithUserAgent(""))
		if f.client.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout kept, got %v", f.client.Timeout)
		}
		if f.maxBodySize != DefaultMaxBodySize {
			t.Errorf("expected default max body size kept, got %d", f.maxBodySize)
		}
		if f.userAgent != DefaultUserAgent {
			t.Errorf("expected default user agent kept, got %q", f.userAgent)
		}
	})
}
