package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/cdentertainment/site-api/internal/http/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestPageDeps groups dependencies required by the guest request page.
type RequestPageDeps struct {
	Logger      *zap.Logger
	Service     service.SongRequestService
	SearchLimit fiber.Handler
	WriteLimit  fiber.Handler
}

// RequestPageHandler renders /request, the guest search-and-submit page.
type RequestPageHandler struct {
	logger      *zap.Logger
	svc         service.SongRequestService
	searchLimit fiber.Handler
	writeLimit  fiber.Handler
}

// NewRequestPageHandler creates a request page handler with the provided dependencies.
func NewRequestPageHandler(deps RequestPageDeps) *RequestPageHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestPageHandler{
		logger:      logger,
		svc:         deps.Service,
		searchLimit: orNext(deps.SearchLimit),
		writeLimit:  orNext(deps.WriteLimit),
	}
}

// Register wires the page routes onto the provided router.
func (h *RequestPageHandler) Register(router fiber.Router) {
	router.Get("/request", h.limitSearches, h.Show)
	router.Post("/request", h.writeLimit, h.Submit)
}

// limitSearches charges the search bucket only when the page view runs a search.
func (h *RequestPageHandler) limitSearches(c *fiber.Ctx) error {
	if strings.TrimSpace(c.Query("q")) == "" {
		return c.Next()
	}
	return h.searchLimit(c)
}

// Show handles GET /request, running a search when q is present.
func (h *RequestPageHandler) Show(c *fiber.Ctx) error {
	ctx := userContext(c)
	session := service.NewIntakeSession(h.svc)
	if err := session.Load(ctx); err != nil {
		return h.render(c, fiber.StatusServiceUnavailable, session, "")
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" && session.State() != service.IntakeClosed {
		_ = session.Search(ctx, q)
	}
	return h.render(c, fiber.StatusOK, session, "")
}

// Submit handles POST /request with the hidden fields of one shown result.
func (h *RequestPageHandler) Submit(c *fiber.Ctx) error {
	ctx := userContext(c)
	session := service.NewIntakeSession(h.svc)
	if err := session.Load(ctx); err != nil {
		return h.render(c, fiber.StatusServiceUnavailable, session, "")
	}

	candidate := model.SongCandidate{
		Title:       c.FormValue("title"),
		ArtistNames: c.FormValue("artistNames"),
		URL:         c.FormValue("url"),
		ImageURL:    c.FormValue("imageUrl"),
	}
	if err := session.Resume(c.FormValue("q"), []model.SongCandidate{candidate}); err != nil {
		return h.render(c, fiber.StatusConflict, session, "")
	}

	if _, err := session.Select(ctx, candidate); err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrRequestsClosed):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrInvalidCandidate):
			status = fiber.StatusBadRequest
		}
		return h.render(c, status, session, "")
	}

	notice := fmt.Sprintf("Thanks! %q by %s is on the list.", strings.TrimSpace(candidate.Title), strings.TrimSpace(candidate.ArtistNames))
	return h.render(c, fiber.StatusOK, session, notice)
}

func (h *RequestPageHandler) render(c *fiber.Ctx, status int, session *service.IntakeSession, notice string) error {
	html, err := view.RenderRequestPage(view.RequestPageData{
		State:   session.State().String(),
		Query:   session.Query(),
		Results: session.Results(),
		Recent:  session.Recent(),
		Error:   guestMessage(session.Err()),
		Notice:  notice,
	})
	if err != nil {
		h.logger.Error("failed to render request page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render page",
		})
	}

	return c.
		Status(status).
		Type("html", "utf-8").
		SendString(html)
}

// guestMessage turns a session error into something safe to show a guest.
func guestMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrRequestsClosed):
		return "Song requests just closed. Thanks for listening!"
	case errors.Is(err, service.ErrInvalidQuery):
		return "Type a song or artist to search."
	case errors.Is(err, service.ErrInvalidCandidate):
		return "That song is missing details, please pick another result."
	case errors.Is(err, service.ErrSearchUnavailable), errors.Is(err, service.ErrSearchFailed):
		return "Song search isn't working right now, please try again in a moment."
	case errors.Is(err, service.ErrSubmitFailed):
		return "We couldn't save your request, please try again."
	default:
		return "Something went wrong, please try again."
	}
}
