package genius

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.GeniusConfig{
		AccessToken: "secret",
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
	})
}

func TestSearchSendsCredentialsAndParsesHits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "ed sheeran perfect", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meta":{"status":200},"response":{"hits":[
			{"type":"song","result":{"title":"Perfect","artist_names":"Ed Sheeran","url":"https://genius.com/perfect","song_art_image_thumbnail_url":"https://img/perfect.jpg"}},
			{"type":"song","result":{"title":"Perfect Duet","artist_names":"","primary_artist":{"name":"Ed Sheeran & Beyoncé"},"url":"https://genius.com/duet"}}
		]}}`))
	})

	got, err := client.Search(context.Background(), "  ed sheeran perfect ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.SongCandidate{
		Title:       "Perfect",
		ArtistNames: "Ed Sheeran",
		URL:         "https://genius.com/perfect",
		ImageURL:    "https://img/perfect.jpg",
	}, got[0])
	assert.Equal(t, "Ed Sheeran & Beyoncé", got[1].ArtistNames)
	assert.Equal(t, model.PlaceholderArtworkURL, got[1].ImageURL)
}

func TestSearchEmptyHits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"hits":[]}}`))
	})

	got, err := client.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchRejectsBlankQueryAndMissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	_, err := New(config.GeniusConfig{AccessToken: "secret", BaseURL: srv.URL}).Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = New(config.GeniusConfig{BaseURL: srv.URL}).Search(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, called)
}

func TestSearchNon2xxIsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), "hello")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
	assert.True(t, IsUpstream(err))
	assert.False(t, IsShapeError(err))
}

func TestSearchTransportFailureIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := New(config.GeniusConfig{AccessToken: "secret", BaseURL: baseURL}).Search(context.Background(), "hello")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Zero(t, ue.StatusCode)
	assert.Error(t, ue.Err)
}

func TestSearchShapeErrors(t *testing.T) {
	cases := map[string]string{
		"not json":           `<html>oops</html>`,
		"missing response":   `{"meta":{"status":200}}`,
		"missing hits":       `{"response":{}}`,
		"hits not a list":    `{"response":{"hits":{"result":{}}}}`,
		"hit without result": `{"response":{"hits":[{"type":"song"}]}}`,
		"empty title":        `{"response":{"hits":[{"result":{"title":"","artist_names":"A","url":"u"}}]}}`,
		"empty artist":       `{"response":{"hits":[{"result":{"title":"T","artist_names":"","url":"u"}}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.Search(context.Background(), "hello")
			require.Error(t, err)
			assert.True(t, IsShapeError(err))
			assert.True(t, IsUpstream(err))
			var ue *UpstreamError
			assert.False(t, errors.As(err, &ue))
		})
	}
}

func TestSearchHonoursCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"hits":[]}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, "hello")
	assert.True(t, IsUpstream(err))
	assert.ErrorIs(t, err, context.Canceled)
}
