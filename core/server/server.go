package server

import (
	"context"
	"fmt"
	"net/http"

	"hireflow-api/core/cache"
	"hireflow-api/core/config"
	"hireflow-api/core/database"
	"hireflow-api/core/logger"
	"hireflow-api/core/middleware"
	"hireflow-api/core/queue"
	"hireflow-api/core/utils"
	"hireflow-api/modules/mailer"
	"hireflow-api/modules/notification"
	"hireflow-api/modules/scheduling"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires the application together and blocks serving HTTP. The asynq
// worker that delivers mail runs in the same process.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	enqueuer := mailer.NewEnqueuer(queueClient)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: utils.GenerateID,
	}))
	e.Use(echomw.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	v1 := e.Group("/api/v1")
	notificationService := notification.Init(v1.Group("/private"), db, mw)

	scheduling.Init(e, db, redisCache, enqueuer, notificationService, mw)

	// Mail worker. Delivery failures are retried by asynq and never block
	// the HTTP path.
	worker := queue.NewServer(cfg.Redis)
	mux := asynq.NewServeMux()
	mailer.NewHandler(mailer.NewSMTPMailer(cfg.Mail)).Register(mux)

	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("server: mail worker stopped", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server: listening", "addr", addr)

	return e.Start(addr)
}
