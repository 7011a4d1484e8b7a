package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/repository"
	"github.com/cdentertainment/site-api/internal/infra/genius"
	"github.com/cdentertainment/site-api/internal/infra/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrInvalidQuery is returned for blank search queries.
	ErrInvalidQuery = errors.New("search query is required")
	// ErrSearchUnavailable means the search provider credential is not configured.
	ErrSearchUnavailable = errors.New("song search is not configured")
	// ErrSearchFailed covers transport, status and response-shape failures; guests may search again.
	ErrSearchFailed = errors.New("song search failed")
	// ErrRequestsClosed means the gate was closed when the request reached the store.
	ErrRequestsClosed = errors.New("song requests are not being accepted")
	// ErrInvalidCandidate is returned when a submitted candidate lacks title or artist,
	// or its url is not an absolute http(s) link.
	ErrInvalidCandidate = errors.New("song title, artist and an http(s) url are required")
	// ErrSubmitFailed is a persistence failure while saving a request; guests may reselect.
	ErrSubmitFailed = errors.New("failed to save song request")
	// ErrNotFound is returned by moderation operations on a missing (or already archived) request.
	ErrNotFound = errors.New("song request not found")
	// ErrPersistence wraps any other store failure.
	ErrPersistence = errors.New("song request store failure")
)

// SongSearcher is the external lyrics/metadata search the intake flow depends on.
type SongSearcher interface {
	Search(ctx context.Context, query string) ([]model.SongCandidate, error)
}

// SongRequestService covers guest intake, the acceptance gate and staff moderation.
type SongRequestService interface {
	SearchSongs(ctx context.Context, query string) ([]model.SongCandidate, error)
	SubmitSongRequest(ctx context.Context, candidate model.SongCandidate) (uint, error)

	IsAcceptingRequests(ctx context.Context) (bool, error)
	SetAcceptingRequests(ctx context.Context, accepting bool) (bool, error)
	ToggleAcceptingRequests(ctx context.Context) (bool, error)

	ListActiveRequests(ctx context.Context) ([]model.SongRequest, error)
	GetRequest(ctx context.Context, id uint) (*model.SongRequest, error)
	ArchiveRequest(ctx context.Context, id uint) error
	DeleteRequest(ctx context.Context, id uint) error
	ArchiveAllActive(ctx context.Context) (int64, error)
}

// SongRequestDeps groups dependencies required by the song request service.
type SongRequestDeps struct {
	Logger   *zap.Logger
	Requests repository.SongRequestRepository
	Settings repository.SettingsRepository
	Searcher SongSearcher
}

type songRequestService struct {
	logger   *zap.Logger
	requests repository.SongRequestRepository
	settings repository.SettingsRepository
	searcher SongSearcher
}

// NewSongRequestService returns a service implementation backed by the given repositories.
func NewSongRequestService(deps SongRequestDeps) SongRequestService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &songRequestService{
		logger:   logger,
		requests: deps.Requests,
		settings: deps.Settings,
		searcher: deps.Searcher,
	}
}

func (s *songRequestService) SearchSongs(ctx context.Context, query string) ([]model.SongCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if s.searcher == nil {
		return nil, ErrSearchUnavailable
	}

	candidates, err := s.searcher.Search(ctx, query)
	switch {
	case err == nil:
		prometheus.ObserveSearch("ok")
		return candidates, nil
	case errors.Is(err, genius.ErrNotConfigured):
		prometheus.ObserveSearch("unconfigured")
		s.logger.Error("song search is missing its access token")
		return nil, ErrSearchUnavailable
	case genius.IsShapeError(err):
		prometheus.ObserveSearch("shape")
		s.logger.Warn("song search upstream shape mismatch", zap.String("query", query), zap.Error(err))
	default:
		prometheus.ObserveSearch("upstream")
		s.logger.Error("song search upstream failure", zap.String("query", query), zap.Error(err))
	}
	return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
}

func (s *songRequestService) SubmitSongRequest(ctx context.Context, candidate model.SongCandidate) (uint, error) {
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.ArtistNames = strings.TrimSpace(candidate.ArtistNames)
	candidate.URL = strings.TrimSpace(candidate.URL)
	if candidate.Title == "" || candidate.ArtistNames == "" || !isWebURL(candidate.URL) {
		return 0, ErrInvalidCandidate
	}
	// Artwork is cosmetic, a bad link just loses the picture.
	candidate.ImageURL = strings.TrimSpace(candidate.ImageURL)
	if candidate.ImageURL != "" && !isWebURL(candidate.ImageURL) {
		candidate.ImageURL = ""
	}

	req := &model.SongRequest{
		Title:       candidate.Title,
		ArtistNames: candidate.ArtistNames,
		URL:         candidate.URL,
		ImageURL:    candidate.ArtworkOrPlaceholder(),
	}

	if err := s.requests.CreateIfAccepting(ctx, req); err != nil {
		if errors.Is(err, repository.ErrRequestsClosed) {
			prometheus.ObserveSongRequestRejected("closed")
			s.logger.Info("song request rejected, requests are closed", zap.String("title", req.Title))
			return 0, ErrRequestsClosed
		}
		prometheus.ObserveSongRequestRejected("store")
		s.logger.Error("failed to save song request", zap.String("title", req.Title), zap.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	prometheus.ObserveSongRequestSubmitted()
	s.logger.Info("song request submitted", zap.Uint("id", req.ID), zap.String("title", req.Title))
	return req.ID, nil
}

// isWebURL reports whether raw is an absolute http or https link with a host.
// Stored links are rendered on the staff dashboard, so other schemes are refused.
func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func (s *songRequestService) IsAcceptingRequests(ctx context.Context) (bool, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return false, s.persistence("read acceptance gate", err)
	}
	return settings.AcceptingSongRequests, nil
}

func (s *songRequestService) SetAcceptingRequests(ctx context.Context, accepting bool) (bool, error) {
	settings, err := s.settings.SetAcceptingSongRequests(ctx, accepting)
	if err != nil {
		return false, s.persistence("set acceptance gate", err)
	}
	s.logger.Info("song request gate set", zap.Bool("accepting", settings.AcceptingSongRequests))
	return settings.AcceptingSongRequests, nil
}

func (s *songRequestService) ToggleAcceptingRequests(ctx context.Context) (bool, error) {
	settings, err := s.settings.ToggleAcceptingSongRequests(ctx)
	if err != nil {
		return false, s.persistence("toggle acceptance gate", err)
	}
	s.logger.Info("song request gate toggled", zap.Bool("accepting", settings.AcceptingSongRequests))
	return settings.AcceptingSongRequests, nil
}

func (s *songRequestService) ListActiveRequests(ctx context.Context) ([]model.SongRequest, error) {
	requests, err := s.requests.ListActive(ctx)
	if err != nil {
		return nil, s.persistence("list song requests", err)
	}
	return requests, nil
}

func (s *songRequestService) GetRequest(ctx context.Context, id uint) (*model.SongRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, s.moderation("get song request", id, err)
	}
	return req, nil
}

func (s *songRequestService) ArchiveRequest(ctx context.Context, id uint) error {
	if err := s.requests.Archive(ctx, id); err != nil {
		return s.moderation("archive song request", id, err)
	}
	prometheus.ObserveSongRequestsArchived("single", 1)
	return nil
}

func (s *songRequestService) DeleteRequest(ctx context.Context, id uint) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return s.moderation("delete song request", id, err)
	}
	return nil
}

func (s *songRequestService) ArchiveAllActive(ctx context.Context) (int64, error) {
	n, err := s.requests.ArchiveAllActive(ctx)
	if err != nil {
		return 0, s.persistence("archive all song requests", err)
	}
	prometheus.ObserveSongRequestsArchived("bulk", n)
	s.logger.Info("archived all active song requests", zap.Int64("count", n))
	return n, nil
}

func (s *songRequestService) moderation(action string, id uint, err error) error {
	if errors.Is(err, repository.ErrSongRequestNotFound) {
		return fmt.Errorf("%s %d: %w", action, id, ErrNotFound)
	}
	s.logger.Error("song request store failure", zap.String("action", action), zap.Uint("id", id), zap.Error(err))
	return fmt.Errorf("%s %d: %w: %v", action, id, ErrPersistence, err)
}

func (s *songRequestService) persistence(action string, err error) error {
	s.logger.Error("song request store failure", zap.String("action", action), zap.Error(err))
	return fmt.Errorf("%s: %w: %v", action, ErrPersistence, err)
}
