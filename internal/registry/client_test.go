package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fbkclanna/cargows/internal/apperr"
)

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/crates/serde", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("User-Agent") != "cargows-test" {
			http.Error(w, "missing user agent", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"crate":{"id":"serde","max_version":"1.0.210"},"versions":[]}`))
	})
	mux.HandleFunc("/api/v1/crates/broken", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"crate":`))
	})
	mux.HandleFunc("/api/v1/crates/shapeless", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[]}`))
	})
	mux.HandleFunc("/api/v1/crates/flaky", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestVersion(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, err := NewClient(srv.URL+"/", "cargows-test", nil)
	if err != nil {
		t.Fatal(err)
	}

	v, err := c.LatestVersion(context.Background(), "serde")
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if v != "1.0.210" {
		t.Errorf("version = %q, want 1.0.210", v)
	}

	if _, err := c.LatestVersion(context.Background(), "serde"); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (second lookup should be cached)", hits.Load())
	}
}

func TestLatestVersion_errors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, err := NewClient(srv.URL, "cargows-test", nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		crate string
		want  error
	}{
		{"missing", apperr.ErrNotFound},
		{"broken", apperr.ErrParse},
		{"shapeless", apperr.ErrParse},
		{"", apperr.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.crate, func(t *testing.T) {
			_, err := c.LatestVersion(context.Background(), tt.crate)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := c.LatestVersion(context.Background(), "flaky"); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestLatestVersion_canceled(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c, err := NewClient(srv.URL, "cargows-test", nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.LatestVersion(ctx, "serde"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
