// Package genius searches the Genius song catalogue for guest song requests.
package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/app/model"
	"golang.org/x/time/rate"
)

const (
	userAgent       = "CD-Entertainment-Song-Requests"
	defaultBaseURL  = "https://api.genius.com"
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 2 << 20
)

var (
	ErrEmptyQuery    = errors.New("genius: query is required")
	ErrNotConfigured = errors.New("genius: access token not configured")
)

// UpstreamError is a transport failure or a non-2xx answer from Genius.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("genius: upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("genius: upstream responded with status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ShapeError means Genius answered 2xx with a body that is not a list of hits wrapping results.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "genius: unexpected response shape: " + e.Reason
}

// IsShapeError reports whether err is, or wraps, a *ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// IsUpstream reports whether err should be shown to guests as a search provider failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) || IsShapeError(err)
}

// Client calls the Genius search endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New builds a client from config. A missing token is reported per call, not here,
// so the rest of the site can run without search.
func New(cfg config.GeniusConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.AccessToken),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

type searchResponse struct {
	Response *struct {
		Hits *[]searchHit `json:"hits"`
	} `json:"response"`
}

type searchHit struct {
	Result *searchResult `json:"result"`
}

type searchResult struct {
	Title         string `json:"title"`
	ArtistNames   string `json:"artist_names"`
	URL           string `json:"url"`
	ThumbnailURL  string `json:"song_art_image_thumbnail_url"`
	PrimaryArtist *struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// Search returns the candidates Genius matched for query, in Genius' order.
func (c *Client) Search(ctx context.Context, query string) ([]model.SongCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if c.token == "" {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UpstreamError{Err: err}
	}

	endpoint := c.baseURL + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("genius: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: err}
	}
	return parseSearch(body)
}

func parseSearch(body []byte) ([]model.SongCandidate, error) {
	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &ShapeError{Reason: err.Error()}
	}
	if decoded.Response == nil {
		return nil, &ShapeError{Reason: "missing response"}
	}
	if decoded.Response.Hits == nil {
		return nil, &ShapeError{Reason: "missing response.hits"}
	}

	hits := *decoded.Response.Hits
	candidates := make([]model.SongCandidate, 0, len(hits))
	for i, hit := range hits {
		r := hit.Result
		if r == nil {
			return nil, &ShapeError{Reason: fmt.Sprintf("hit %d has no result", i)}
		}
		artist := strings.TrimSpace(r.ArtistNames)
		if artist == "" && r.PrimaryArtist != nil {
			artist = strings.TrimSpace(r.PrimaryArtist.Name)
		}
		title := strings.TrimSpace(r.Title)
		switch {
		case title == "":
			return nil, &ShapeError{Reason: fmt.Sprintf("hit %d has no title", i)}
		case artist == "":
			return nil, &ShapeError{Reason: fmt.Sprintf("hit %d has no artist", i)}
		case strings.TrimSpace(r.URL) == "":
			return nil, &ShapeError{Reason: fmt.Sprintf("hit %d has no url", i)}
		}

		thumb := strings.TrimSpace(r.ThumbnailURL)
		if thumb == "" {
			thumb = model.PlaceholderArtworkURL
		}
		candidates = append(candidates, model.SongCandidate{
			Title:       title,
			ArtistNames: artist,
			URL:         strings.TrimSpace(r.URL),
			ImageURL:    thumb,
		})
	}
	return candidates, nil
}
