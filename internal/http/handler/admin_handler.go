package handler

import (
	"crypto/subtle"
	"time"

	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/cdentertainment/site-api/internal/http/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminDeps groups dependencies required by the staff login and settings handlers.
type AdminDeps struct {
	Logger       *zap.Logger
	Service      service.SongRequestService
	Tokens       *util.TokenSigner
	Username     string
	PasswordHash string

	RequireStaff fiber.Handler
	LoginLimit   fiber.Handler
}

// AdminHandler serves staff login and site settings.
type AdminHandler struct {
	logger       *zap.Logger
	svc          service.SongRequestService
	tokens       *util.TokenSigner
	username     string
	passwordHash []byte
	requireStaff fiber.Handler
	loginLimit   fiber.Handler
}

// NewAdminHandler creates an admin handler with the provided dependencies.
func NewAdminHandler(deps AdminDeps) *AdminHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		logger:       logger,
		svc:          deps.Service,
		tokens:       deps.Tokens,
		username:     deps.Username,
		passwordHash: []byte(deps.PasswordHash),
		requireStaff: orNext(deps.RequireStaff),
		loginLimit:   orNext(deps.LoginLimit),
	}
}

// Register wires admin routes onto the provided router.
func (h *AdminHandler) Register(router fiber.Router) {
	admin := router.Group("/api/admin")
	{
		admin.Post("/login", h.loginLimit, h.Login)
		admin.Get("/settings", h.requireStaff, h.GetSettings)
		admin.Put("/settings", h.requireStaff, h.UpdateSettings)
	}
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the staff bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if h.username == "" || len(h.passwordHash) == 0 || h.tokens == nil {
		h.logger.Error("staff login attempted but admin credentials are not configured")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Staff login is not configured",
		})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		h.logger.Warn("staff login rejected", zap.String("username", req.Username), zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, expiresAt, err := h.tokens.Issue(h.username)
	if err != nil {
		h.logger.Error("failed to issue staff token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to sign in",
		})
	}

	h.logger.Info("staff signed in", zap.String("username", h.username))
	return c.JSON(LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// GetSettings handles GET /api/admin/settings
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	accepting, err := h.svc.IsAcceptingRequests(userContext(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch settings",
		})
	}
	return c.JSON(fiber.Map{"acceptingSongRequests": accepting})
}

// UpdateSettingsRequest is the body of PUT /api/admin/settings.
type UpdateSettingsRequest struct {
	AcceptingSongRequests *bool `json:"acceptingSongRequests" validate:"required"`
}

// UpdateSettings handles PUT /api/admin/settings
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	accepting, err := h.svc.SetAcceptingRequests(userContext(c), *req.AcceptingSongRequests)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update settings",
		})
	}
	return c.JSON(fiber.Map{"acceptingSongRequests": accepting})
}
