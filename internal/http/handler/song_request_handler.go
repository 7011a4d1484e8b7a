package handler

import (
	"context"
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SongRequestDeps groups dependencies required by the song request API.
type SongRequestDeps struct {
	Logger  *zap.Logger
	Service service.SongRequestService

	// Optional middleware; nil means the route is unguarded.
	RequireStaff fiber.Handler
	SearchLimit  fiber.Handler
	WriteLimit   fiber.Handler
}

// SongRequestHandler serves guest search/submit and staff moderation of song requests.
type SongRequestHandler struct {
	logger       *zap.Logger
	svc          service.SongRequestService
	requireStaff fiber.Handler
	searchLimit  fiber.Handler
	writeLimit   fiber.Handler
}

// NewSongRequestHandler creates a song request handler with the provided dependencies.
func NewSongRequestHandler(deps SongRequestDeps) *SongRequestHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SongRequestHandler{
		logger:       logger,
		svc:          deps.Service,
		requireStaff: orNext(deps.RequireStaff),
		searchLimit:  orNext(deps.SearchLimit),
		writeLimit:   orNext(deps.WriteLimit),
	}
}

// Register wires song request routes onto the provided router.
func (h *SongRequestHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	api.Get("/search", h.searchLimit, h.Search)

	requests := api.Group("/song-requests")
	{
		requests.Get("/", h.ListActive)
		requests.Post("/", h.writeLimit, h.Submit)
		requests.Delete("/", h.requireStaff, h.ArchiveAll)

		// Registered before /:id so "setting" is never parsed as an id.
		requests.Get("/setting", h.GetSetting)
		requests.Put("/setting", h.requireStaff, h.ToggleSetting)

		requests.Get("/:id", h.requireStaff, h.Get)
		requests.Put("/:id", h.requireStaff, h.Archive)
		requests.Delete("/:id", h.requireStaff, h.Delete)
	}
}

// Search handles GET /api/search?q=
func (h *SongRequestHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	results, err := h.svc.SearchSongs(userContext(c), q)
	switch {
	case err == nil:
		return c.JSON(results)
	case errors.Is(err, service.ErrInvalidQuery):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	case errors.Is(err, service.ErrSearchUnavailable):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Song search is not available right now",
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to search songs",
		})
	}
}

// ListActive handles GET /api/song-requests
func (h *SongRequestHandler) ListActive(c *fiber.Ctx) error {
	requests, err := h.svc.ListActiveRequests(userContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch song requests",
		})
	}
	if requests == nil {
		requests = []model.SongRequest{}
	}
	return c.JSON(requests)
}

// SubmitRequest is the body of POST /api/song-requests, one Genius search hit.
type SubmitRequest struct {
	Title       string `json:"title" validate:"required"`
	ArtistNames string `json:"artist_names" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	ImageURL    string `json:"song_art_image_thumbnail_url"`
}

// Submit handles POST /api/song-requests
func (h *SongRequestHandler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	id, err := h.svc.SubmitSongRequest(userContext(c), model.SongCandidate{
		Title:       req.Title,
		ArtistNames: req.ArtistNames,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
	})
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	case errors.Is(err, service.ErrRequestsClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Song requests are currently closed",
		})
	case errors.Is(err, service.ErrInvalidCandidate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create song request",
		})
	}
}

// ArchiveAll handles DELETE /api/song-requests
func (h *SongRequestHandler) ArchiveAll(c *fiber.Ctx) error {
	n, err := h.svc.ArchiveAllActive(userContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive song requests",
		})
	}
	return c.JSON(fiber.Map{"archived": n})
}

// GetSetting handles GET /api/song-requests/setting
func (h *SongRequestHandler) GetSetting(c *fiber.Ctx) error {
	accepting, err := h.svc.IsAcceptingRequests(userContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch setting",
		})
	}
	return c.JSON(fiber.Map{"acceptingRequests": accepting})
}

// ToggleSetting handles PUT /api/song-requests/setting
func (h *SongRequestHandler) ToggleSetting(c *fiber.Ctx) error {
	accepting, err := h.svc.ToggleAcceptingRequests(userContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update setting",
		})
	}
	return c.JSON(fiber.Map{"acceptingRequests": accepting})
}

// Get handles GET /api/song-requests/:id
func (h *SongRequestHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badSongRequestID(c)
	}
	req, err := h.svc.GetRequest(userContext(c), id)
	if err != nil {
		return moderationError(c, err, "Failed to fetch song request")
	}
	return c.JSON(req)
}

// Archive handles PUT /api/song-requests/:id
func (h *SongRequestHandler) Archive(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badSongRequestID(c)
	}
	if err := h.svc.ArchiveRequest(userContext(c), id); err != nil {
		return moderationError(c, err, "Failed to archive song request")
	}
	return c.JSON(fiber.Map{"id": id, "isArchived": true})
}

// Delete handles DELETE /api/song-requests/:id
func (h *SongRequestHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badSongRequestID(c)
	}
	if err := h.svc.DeleteRequest(userContext(c), id); err != nil {
		return moderationError(c, err, "Failed to delete song request")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func badSongRequestID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid song request ID",
	})
}

func moderationError(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Song request not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": msg,
	})
}

func userContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

func orNext(h fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}
	return func(c *fiber.Ctx) error { return c.Next() }
}
