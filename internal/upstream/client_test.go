package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"keyword-match-service/internal/domain"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "harm", r.URL.Query().Get("filter"))
		assert.Equal(t, "v2", r.URL.Query().Get("version"))

		w.Header().Set("Cache-Control", "max-age=120")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"regex":{"keywords":["suicide","sewerslide"],"preprocess":"[!.]"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Hour)

	set, ttl, err := c.Fetch(context.Background(), "harm", "v2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"suicide", "sewerslide"}, set.Keywords)
	assert.Equal(t, "[!.]", set.Preprocess)
	assert.Equal(t, 2*time.Minute, ttl)
}

func TestFetch_NoVersionParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("version"))
		_, _ = w.Write([]byte(`{"regex":{"keywords":[],"preprocess":""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Hour)

	_, _, err := c.Fetch(context.Background(), "harm", "")
	assert.NoError(t, err)
}

func TestFetch_DefaultTTLWithoutCacheControl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"regex":{"keywords":["a"],"preprocess":""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 42*time.Minute)

	_, ttl, err := c.Fetch(context.Background(), "harm", "")
	assert.NoError(t, err)
	assert.Equal(t, 42*time.Minute, ttl)
}

func TestFetch_UpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Hour)

	_, _, err := c.Fetch(context.Background(), "harm", "")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second, time.Hour)

	_, _, err := c.Fetch(context.Background(), "harm", "")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestFetch_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, time.Hour)

	_, _, err := c.Fetch(context.Background(), "harm", "")
	assert.ErrorIs(t, err, domain.ErrUpstreamDecode)
}
