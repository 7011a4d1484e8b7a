package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cdentertainment/site-api/config"
	appmodel "github.com/cdentertainment/site-api/internal/app/model"
	apprepository "github.com/cdentertainment/site-api/internal/app/repository"
	appserver "github.com/cdentertainment/site-api/internal/app/server"
	appservice "github.com/cdentertainment/site-api/internal/app/service"
	"github.com/cdentertainment/site-api/internal/http/handler"
	"github.com/cdentertainment/site-api/internal/http/util"
	infraEmail "github.com/cdentertainment/site-api/internal/infra/email"
	infraGenius "github.com/cdentertainment/site-api/internal/infra/genius"
	"github.com/cdentertainment/site-api/internal/infra/logger"
	infraNATS "github.com/cdentertainment/site-api/internal/infra/nats"
	infraPostgres "github.com/cdentertainment/site-api/internal/infra/postgres"
	infraPrometheus "github.com/cdentertainment/site-api/internal/infra/prometheus"
	infraRedis "github.com/cdentertainment/site-api/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCfg := logger.FromEnv("site-api")
	log := logger.MustInit(logCfg)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.Bool("postgres_url_set", cfg.Postgres.URL != ""),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
		zap.Bool("genius_configured", cfg.Genius.AccessToken != ""),
		zap.Duration("stale_after", cfg.Songs.StaleAfter),
	)

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres, log)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB, appmodel.All()...); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	songRepo := apprepository.NewSongRequestRepository(gormDB)
	settingsRepo := apprepository.NewSettingsRepository(gormDB)
	catalogRepo := apprepository.NewCatalogRepository(gormDB)

	if err := settingsRepo.EnsureDefaults(ctx, cfg.Songs.AcceptingOnFirstBoot); err != nil {
		log.Fatal("Failed to initialise app settings", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Connected to Postgres successfully")

	probes := map[string]handler.Pinger{"postgres": pool}

	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		// Rate limiting fails open, so the site still serves without Redis.
		log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		probes["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		log.Info("Connected to Redis successfully")
	}

	var leads appservice.LeadSink
	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Warn("NATS unavailable, lead notifications disabled", zap.Error(err))
	} else {
		defer natsConn.Drain()
		if err := infraNATS.EnsureLeadStream(js); err != nil {
			log.Fatal("Failed to provision lead stream", zap.Error(err))
		}
		leads = appservice.NewLeadPublisher(js)

		notifier := appservice.NewLeadNotifier(js, log, infraEmail.NewService(cfg.Email))
		if err := notifier.Start(ctx); err != nil {
			log.Fatal("Failed to start lead notifier", zap.Error(err))
		}
		log.Info("Connected to NATS successfully", zap.String("url", infraNATS.URL(cfg.NATS)))
	}

	if !logCfg.Development {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server", zap.String("addr", promServer.Addr))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		infraPrometheus.Register()
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	songService := appservice.NewSongRequestService(appservice.SongRequestDeps{
		Logger:   log,
		Requests: songRepo,
		Settings: settingsRepo,
		Searcher: infraGenius.New(cfg.Genius),
	})
	catalogService := appservice.NewCatalogService(log, catalogRepo)
	if err := catalogService.SeedEventTypes(ctx); err != nil {
		log.Fatal("Failed to seed event types", zap.Error(err))
	}

	sweeper := appservice.NewStaleRequestSweeper(log, songRepo, cfg.Songs.StaleAfter, cfg.Songs.SweepInterval)
	if sweeper != nil {
		sweeper.Start()
		defer sweeper.Stop()
	}

	if cfg.Admin.TokenSecret == "" {
		log.Warn("ADMIN_TOKEN_SECRET is empty, staff routes will reject every request")
	}

	server := appserver.New(appserver.Dependencies{
		Logger:       log,
		Config:       cfg,
		SongRequests: songService,
		Contacts: appservice.NewContactService(appservice.ContactDeps{
			Logger:   log,
			Contacts: apprepository.NewContactSubmissionRepository(gormDB),
			Catalog:  catalogRepo,
			Leads:    leads,
		}),
		Intakes: appservice.NewIntakeFormService(appservice.IntakeFormDeps{
			Logger: log,
			Forms:  apprepository.NewIntakeFormRepository(gormDB),
			Leads:  leads,
		}),
		Catalog: catalogService,
		Redis:   redisClient,
		Probes:  probes,
		Tokens:  util.NewTokenSigner([]byte(cfg.Admin.TokenSecret), cfg.Admin.TokenTTL),
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Starting HTTP server", zap.String("addr", cfg.Server.Addr))
	if err := server.Listen(cfg.Server.Addr); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
