package server

import (
	"context"

	"github.com/cdentertainment/site-api/config"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/cdentertainment/site-api/internal/http/handler"
	"github.com/cdentertainment/site-api/internal/http/middleware"
	"github.com/cdentertainment/site-api/internal/http/util"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP server routes to.
type Dependencies struct {
	Logger *zap.Logger
	Config *config.Config

	SongRequests service.SongRequestService
	Contacts     service.ContactService
	Intakes      service.IntakeFormService
	Catalog      service.CatalogService

	// Redis backs rate limiting; nil disables it.
	Redis *redis.Client
	// Probes run by /api/ready, keyed by name.
	Probes map[string]handler.Pinger
	Tokens *util.TokenSigner
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with all routes registered.
func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Config == nil {
		deps.Config = &config.Config{}
	}
	if deps.Tokens == nil {
		deps.Tokens = util.NewTokenSigner([]byte(deps.Config.Admin.TokenSecret), deps.Config.Admin.TokenTTL)
	}

	app := fiber.New(fiber.Config{
		AppName:               "site-api",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.CORS(s.deps.Config.Server.CORSOrigin))
}

func (s *Server) registerRoutes() {
	log := s.deps.Logger
	cfg := s.deps.Config

	requireStaff := middleware.RequireStaff(s.deps.Tokens, log)
	limit := func(prefix string, n int) fiber.Handler {
		return middleware.RateLimit(s.deps.Redis, middleware.RateLimitConfig{
			MaxRequests: n,
			Window:      cfg.RateLimit.Window,
			KeyPrefix:   prefix,
		}, log)
	}
	perWindow := cfg.RateLimit.MaxRequests
	searchLimit := limit("ratelimit:search", perWindow)
	writeLimit := limit("ratelimit:write", perWindow)
	// Login attempts get a tighter bucket than guest traffic.
	loginLimit := limit("ratelimit:login", 5)

	handler.NewHealthHandler(log, s.deps.Probes).Register(s.app)

	handler.NewSongRequestHandler(handler.SongRequestDeps{
		Logger:       log,
		Service:      s.deps.SongRequests,
		RequireStaff: requireStaff,
		SearchLimit:  searchLimit,
		WriteLimit:   writeLimit,
	}).Register(s.app)

	handler.NewRequestPageHandler(handler.RequestPageDeps{
		Logger:      log,
		Service:     s.deps.SongRequests,
		SearchLimit: searchLimit,
		WriteLimit:  writeLimit,
	}).Register(s.app)

	handler.NewAdminHandler(handler.AdminDeps{
		Logger:       log,
		Service:      s.deps.SongRequests,
		Tokens:       s.deps.Tokens,
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		RequireStaff: requireStaff,
		LoginLimit:   loginLimit,
	}).Register(s.app)

	handler.NewLeadHandler(handler.LeadDeps{
		Logger:       log,
		Contacts:     s.deps.Contacts,
		Intakes:      s.deps.Intakes,
		RequireStaff: requireStaff,
		WriteLimit:   writeLimit,
	}).Register(s.app)

	handler.NewCatalogHandler(handler.CatalogDeps{
		Logger:       log,
		Catalog:      s.deps.Catalog,
		RequireStaff: requireStaff,
	}).Register(s.app)
}
