package stepsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHTTPProvider_EmptyURL(t *testing.T) {
	if p := NewHTTPProvider("  ", "tok"); p != nil {
		t.Errorf("NewHTTPProvider(empty) = %v, want nil", p)
	}
}

func TestHTTPProvider_Steps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/steps" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"date":"` + r.URL.Query().Get("date") + `","steps":8421}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/", "secret")
	n, err := p.Steps(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("Steps: %v", err)
	}
	if n != 8421 {
		t.Errorf("Steps = %d, want 8421", n)
	}
}

func TestHTTPProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := NewHTTPProvider(srv.URL, "").Steps(context.Background(), "2025-06-01")
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestHTTPProvider_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2025-06-02","steps":5}`))
	}))
	defer srv.Close()

	if _, err := NewHTTPProvider(srv.URL, "").Steps(context.Background(), "2025-06-01"); err == nil {
		t.Fatal("expected error for mismatched date")
	}
}

type fakeProvider struct {
	steps int
	err   error
}

func (f fakeProvider) Steps(context.Context, string) (int, error) { return f.steps, f.err }

func TestResolve(t *testing.T) {
	ctx := context.Background()

	r := Resolve(ctx, nil, "2025-06-01", 300)
	if r.Steps != 300 || r.Source != SourceLocal || r.Err != nil {
		t.Errorf("nil provider: %+v", r)
	}

	r = Resolve(ctx, fakeProvider{steps: 9000}, "2025-06-01", 300)
	if r.Steps != 9000 || r.Source != SourceProvider {
		t.Errorf("provider ok: %+v", r)
	}

	r = Resolve(ctx, fakeProvider{err: ErrRateLimited}, "2025-06-01", 300)
	if r.Steps != 300 || r.Source != SourceLocal || !errors.Is(r.Err, ErrRateLimited) {
		t.Errorf("provider failing: %+v", r)
	}
}
