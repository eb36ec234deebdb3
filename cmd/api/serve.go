package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/rental-platform/internal/db"
	"github.com/BruksfildServices01/rental-platform/internal/infra/broker/kafka"
	"github.com/BruksfildServices01/rental-platform/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/rental-platform/internal/infra/repository"
	"github.com/BruksfildServices01/rental-platform/internal/infra/storage/s3"
	"github.com/BruksfildServices01/rental-platform/internal/jobs"
	"github.com/BruksfildServices01/rental-platform/internal/middleware"
	"github.com/BruksfildServices01/rental-platform/internal/obs"
	"github.com/BruksfildServices01/rental-platform/internal/routes"
	ucBooking "github.com/BruksfildServices01/rental-platform/internal/usecase/booking"
)

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run schema migrations on start")
	return cmd
}

// bootstrap loads configuration and opens the database. Shared by every
// subcommand.
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := obs.NewLogger(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func serve(ctx context.Context, skipMigrate bool) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	if !skipMigrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	sinks := []audit.Sink{audit.New(db)}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Warn("kafka unavailable, audit events stay local", "error", err)
		} else {
			defer producer.Close()
			sinks = append(sinks, kafka.NewAuditSink(producer, cfg.KafkaTopic))
		}
	}
	dispatcher := audit.NewDispatcher(logger, sinks...)

	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Logger: logger,
		Audit:  dispatcher,
	}

	// ======================================================
	// OPTIONAL INFRA
	// ======================================================
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Slots = cache.NewRedisSlots(client, cfg.SlotCacheTTL)
	}
	if cfg.S3.Bucket != "" {
		store, err := s3.NewClient(cfg.S3, logger)
		if err != nil {
			return err
		}
		deps.Documents = store
	}

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler(logger)
	completer := ucBooking.NewCompletePastBookings(infraRepo.NewBookingGormRepository(db), dispatcher, logger)
	if err := scheduler.Register("complete_past_bookings", cfg.BookingCompletionCron, completer); err != nil {
		return err
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	configureGinMode(cfg)
	r := newEngine(deps)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		scheduler.Stop(shutdownCtx)
	}()

	logger.Info("HTTP server starting", "addr", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	dispatcher.Close(closeCtx)
	logger.Info("HTTP server stopped")
	return nil
}

func newEngine(deps routes.Deps) *gin.Engine {
	r := gin.New()
	m := obs.Middleware{Logger: deps.Logger}
	r.Use(gin.Recovery(), m.RequestID(), m.LoggerMiddleware(), middleware.CORSMiddleware(deps.Config.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)
	return r
}

func configureGinMode(cfg *config.Config) {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
