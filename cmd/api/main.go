package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/masifunde/apsmatch-api/internal/config"
	"github.com/masifunde/apsmatch-api/internal/database"
	"github.com/masifunde/apsmatch-api/internal/handler"
	"github.com/masifunde/apsmatch-api/internal/matching"
	"github.com/masifunde/apsmatch-api/internal/middleware"
	"github.com/masifunde/apsmatch-api/internal/models"
	"github.com/masifunde/apsmatch-api/internal/repository"
	"github.com/masifunde/apsmatch-api/internal/router"
	"github.com/masifunde/apsmatch-api/internal/service"
	"github.com/masifunde/apsmatch-api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.StudentMark{}, &models.Program{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	constraints := validation.DefaultConstraints()
	coreValidator := validation.NewValidator(constraints)
	engine := matching.NewEngine(constraints)

	markRepo := repository.NewStudentMarkRepository(db)
	programRepo := repository.NewProgramRepository(db)

	markService := service.NewMarkService(markRepo, coreValidator, cfg.BulkMaxRecords, natsConn, logger)
	matchService := service.NewMatchService(markRepo, programRepo, engine, validate, redisClient, cfg.MatchCacheTTL, logger)
	programService := service.NewProgramService(programRepo, validate, logger)

	markHandler := handler.NewMarkHandler(markService, logger)
	matchHandler := handler.NewMatchHandler(matchService, logger)
	programHandler := handler.NewProgramHandler(programService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, router.Dependencies{
		Config:   cfg,
		Marks:    markHandler,
		Matches:  matchHandler,
		Programs: programHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
