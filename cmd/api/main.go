package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/homefinderz-backend/api/routes"
	"github.com/angelmondragon/homefinderz-backend/internal/assistant"
	"github.com/angelmondragon/homefinderz-backend/internal/conversations"
	"github.com/angelmondragon/homefinderz-backend/internal/listings"
	"github.com/angelmondragon/homefinderz-backend/internal/notifications"
	"github.com/angelmondragon/homefinderz-backend/internal/users"
	"github.com/angelmondragon/homefinderz-backend/internal/wishlist"
	"github.com/angelmondragon/homefinderz-backend/pkg/cache"
	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	"github.com/angelmondragon/homefinderz-backend/pkg/db"
	"github.com/angelmondragon/homefinderz-backend/pkg/genai"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/metrics"
	"github.com/angelmondragon/homefinderz-backend/pkg/migrate"
	"github.com/angelmondragon/homefinderz-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cacheClient := cache.New(redisClient, cfg.Cache, logg)

	genaiClient, err := genai.New(context.Background(), cfg.GenAI, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap genai client", err)
		os.Exit(1)
	}

	assistantService, err := assistant.NewService(assistant.ServiceParams{
		Conversations: conversations.NewRepository(dbClient.DB()),
		Sessions:      assistant.NewInMemoryRegistry(),
		Factory:       genaiClient,
		Logger:        logg,
		Metrics:       metrics.NewAssistantMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create assistant service", err)
		os.Exit(1)
	}

	mailer, err := notifications.NewSendGridMailer(cfg.Sendgrid)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}
	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Mailer:  mailer,
		Logger:  logg,
		Metrics: metrics.NewNotificationMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification dispatcher", err)
		os.Exit(1)
	}
	feedService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	listingsRepo := listings.NewRepository(dbClient.DB())
	wishlistRepo := wishlist.NewRepository(dbClient.DB())

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:       wishlistRepo,
		Properties: listingsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	listingsService, err := listings.NewService(listings.ServiceParams{
		Repo:      listingsRepo,
		Owners:    users.NewRepository(dbClient.DB()),
		Wishes:    wishlistRepo,
		Notifier:  dispatcher,
		Feed:      feedService,
		Assistant: assistantService,
		Cache:     cacheClient,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create listings service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, listingsService, wishlistService, feedService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
