package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aimhealth/growthos/backend/internal/config"
	"github.com/aimhealth/growthos/backend/internal/digest"
	"github.com/aimhealth/growthos/backend/internal/handlers"
	"github.com/aimhealth/growthos/backend/internal/logger"
	"github.com/aimhealth/growthos/backend/internal/middleware"
	"github.com/aimhealth/growthos/backend/internal/notify"
	"github.com/aimhealth/growthos/backend/internal/repository"
	"github.com/aimhealth/growthos/backend/internal/seed"
	"github.com/aimhealth/growthos/backend/internal/service"
	"github.com/aimhealth/growthos/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

// services bundles the wired service layer for the serve and digest commands
type services struct {
	referral service.ReferralService
	revOps   service.RevOpsService
	quality  service.QualityService
	client   *supabase.Client
}

func buildServices(cfg *config.Config) *services {
	client := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	referralRepo := repository.NewReferralRepository(client)
	alertRepo := repository.NewAlertRepository(client)
	pipelineRepo := repository.NewPipelineRepository(client)
	qualityRepo := repository.NewQualityRepository(client)

	return &services{
		referral: service.NewReferralService(referralRepo, alertRepo),
		revOps:   service.NewRevOpsService(pipelineRepo),
		quality:  service.NewQualityService(qualityRepo),
		client:   client,
	}
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return notify.NopNotifier{}
	}
	notifier, err := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		logger.Warn("telegram notifier unavailable, digests will be dropped", logger.Err(err))
		return notify.NopNotifier{}
	}
	return notifier
}

func initLogger(cfg *config.Config) {
	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	initLogger(cfg)
	logger.Info("starting Growth OS API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	svcs := buildServices(cfg)

	referralHandler := handlers.NewReferralHandler(svcs.referral)
	revOpsHandler := handlers.NewRevOpsHandler(svcs.revOps)
	qualityHandler := handlers.NewQualityHandler(svcs.quality)

	// The seed endpoint needs a direct Postgres connection; without one it
	// stays registered but answers 503.
	var applier handlers.SeedApplier
	if cfg.Database.URL != "" {
		a, err := seed.NewApplier(cfg.Database.URL)
		if err != nil {
			logger.Warn("seed applier unavailable", logger.Err(err))
		} else {
			defer a.Close()
			applier = a
		}
	}
	adminHandler := handlers.NewAdminHandler(cfg.Admin.SeedKey, applier)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Admin routes authenticate with the static key, not a user token
		admin := v1.Group("/admin")
		admin.Use(middleware.RateLimitAdmin())
		{
			admin.POST("/seed", adminHandler.Seed)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(svcs.client))
		{
			// Referral intelligence
			protected.GET("/referrals/dashboard", referralHandler.Dashboard)
			protected.GET("/referrals/sources", referralHandler.ListSources)
			protected.GET("/referrals/sources/:id", referralHandler.GetSource)
			protected.POST("/alerts/acknowledge", referralHandler.AcknowledgeAlert)

			// Revenue operations
			protected.GET("/revops/dashboard", revOpsHandler.Dashboard)
			protected.POST("/revops/bottlenecks/:id/resolve", revOpsHandler.ResolveBottleneck)

			// Clinical quality
			protected.GET("/quality/dashboard", qualityHandler.Dashboard)
		}
	}

	if cfg.Digest.Enabled {
		job := digest.NewJob(cfg.Digest.Schedule, svcs.referral, svcs.revOps, svcs.quality, buildNotifier(cfg))
		if err := job.Start(); err != nil {
			return fmt.Errorf("failed to start digest job: %w", err)
		}
		defer job.Stop()
	}

	logger.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
