package quotesource

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/quotebox/internal/quote"
)

func TestFetchDecodesBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "quotebox", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"quote": "I am the one who knocks.", "author": "Walter White"},
			{"quote": "  Say my name.  ", "author": " Walter White "},
			{"quote": "", "author": "Nobody"}
		]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	batch, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, quote.Batch{
		{Text: "I am the one who knocks.", Author: "Walter White"},
		{Text: "Say my name.", Author: "Walter White"},
	}, batch)
}

func TestFetchEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	batch, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch)
}

func TestFetchNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
}

func TestFetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	c, err := New(endpoint)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchHonorsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Fetch(ctx)
	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestValidateEndpoint(t *testing.T) {
	got, err := ValidateEndpoint("  https://example.com/v1/quotes/50 ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v1/quotes/50", got)

	_, err = ValidateEndpoint("ftp://example.com/quotes")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = ValidateEndpoint("")
	assert.Error(t, err)

	_, err = ValidateEndpoint("https:///nohost")
	assert.Error(t, err)
}

func TestNewDefaultsToQuietLogger(t *testing.T) {
	c, err := New("http://example.com/quotes")
	require.NoError(t, err)
	require.NotNil(t, c.log)
	assert.False(t, c.log.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, c.log.Enabled(context.Background(), slog.LevelInfo))
}
