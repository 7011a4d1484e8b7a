package handler

import (
	"errors"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogDeps groups dependencies required by the site content handlers.
type CatalogDeps struct {
	Logger       *zap.Logger
	Catalog      service.CatalogService
	RequireStaff fiber.Handler
}

// CatalogHandler serves event types, packages, counters and the about section.
type CatalogHandler struct {
	logger       *zap.Logger
	catalog      service.CatalogService
	requireStaff fiber.Handler
}

// NewCatalogHandler creates a catalog handler with the provided dependencies.
func NewCatalogHandler(deps CatalogDeps) *CatalogHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{
		logger:       logger,
		catalog:      deps.Catalog,
		requireStaff: orNext(deps.RequireStaff),
	}
}

// Register wires catalog routes onto the provided router.
func (h *CatalogHandler) Register(router fiber.Router) {
	api := router.Group("/api")
	{
		api.Get("/event-types", h.EventTypes)
		api.Get("/packages", h.Packages)
		api.Get("/counters", h.Counters)
		api.Get("/about", h.About)
		api.Put("/about", h.requireStaff, h.UpdateAbout)
	}
}

// EventTypes handles GET /api/event-types
func (h *CatalogHandler) EventTypes(c *fiber.Ctx) error {
	types, err := h.catalog.EventTypes(userContext(c))
	if err != nil {
		h.logger.Error("failed to list event types", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event types",
		})
	}
	if types == nil {
		types = []model.EventType{}
	}
	return c.JSON(types)
}

// Packages handles GET /api/packages
func (h *CatalogHandler) Packages(c *fiber.Ctx) error {
	packages, err := h.catalog.Packages(userContext(c))
	if err != nil {
		h.logger.Error("failed to list packages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch packages",
		})
	}
	if packages == nil {
		packages = []model.PricePackage{}
	}
	return c.JSON(packages)
}

// Counters handles GET /api/counters
func (h *CatalogHandler) Counters(c *fiber.Ctx) error {
	counters, err := h.catalog.Counters(userContext(c))
	if err != nil {
		h.logger.Error("failed to list counters", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch counters",
		})
	}
	if counters == nil {
		counters = []model.Counter{}
	}
	return c.JSON(counters)
}

// About handles GET /api/about. An unset section is a JSON null, not a 404.
func (h *CatalogHandler) About(c *fiber.Ctx) error {
	about, err := h.catalog.About(userContext(c))
	if err != nil {
		if errors.Is(err, service.ErrAboutNotFound) {
			return c.JSON(nil)
		}
		h.logger.Error("failed to fetch about", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch about information",
		})
	}
	return c.JSON(about)
}

// UpdateAboutRequest is the body of PUT /api/about.
type UpdateAboutRequest struct {
	ID          flexInt `json:"id" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateAbout handles PUT /api/about
func (h *CatalogHandler) UpdateAbout(c *fiber.Ctx) error {
	var req UpdateAboutRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	about := &model.About{
		ID:          uint(req.ID),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.catalog.UpdateAbout(userContext(c), about); err != nil {
		if errors.Is(err, service.ErrAboutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "About section not found",
			})
		}
		h.logger.Error("failed to update about", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update about information",
		})
	}
	return c.JSON(about)
}
