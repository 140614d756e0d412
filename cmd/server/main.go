package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/config"
	"github.com/tradesoncall/backend/internal/database"
	"github.com/tradesoncall/backend/internal/handler"
	"github.com/tradesoncall/backend/internal/logger"
	"github.com/tradesoncall/backend/internal/places"
	"github.com/tradesoncall/backend/internal/queue"
	"github.com/tradesoncall/backend/internal/repository"
	"github.com/tradesoncall/backend/internal/router"
	"github.com/tradesoncall/backend/internal/service"
	"github.com/tradesoncall/backend/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.PoolConfig{MaxOpenConns: cfg.DBMaxOpenConns, MaxIdleConns: cfg.DBMaxIdleConns})
	if err != nil {
		zlog.Fatal("database open", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database migrate", zap.Error(err))
	}

	codec, err := utils.NewTokenCodec(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		zlog.Fatal("token codec", zap.Error(err))
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	rdb := config.NewRedisClient()
	publisher := queue.NewPublisher(zlog)
	placesClient := places.NewClient(cfg.PlacesAPIKey, cfg.PlacesBaseURL, cfg.GeocodingBaseURL, zlog)

	authSvc := service.NewAuthService(userRepo, tokenRepo, codec, cfg.BcryptCost, zlog)
	searchSvc := service.NewSearchService(placesClient, historyRepo, publisher, zlog)
	verifySvc := service.NewVerificationService(rdb, userRepo, publisher, zlog)

	go func() {
		if err := queue.StartSearchConsumer(zlog); err != nil {
			zlog.Warn("search event consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(zlog)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, router.Handlers{
		Auth:   handler.NewAuthHandler(authSvc),
		User:   handler.NewUserHandler(authSvc, userRepo),
		Search: handler.NewSearchHandler(searchSvc, historyRepo),
		Verify: handler.NewVerifyHandler(verifySvc),
	}, codec, tokenRepo, userRepo, zlog)

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
