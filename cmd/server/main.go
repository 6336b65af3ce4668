package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mockmate/internal/cache"
	"mockmate/internal/config"
	"mockmate/internal/repository"
	"mockmate/internal/sandbox"
	"mockmate/internal/service"
	"mockmate/internal/transport/rest"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	logger.Info("ai config",
		zap.String("questions", aiConfig.Models.Questions),
		zap.String("evaluation", aiConfig.Models.Evaluation),
		zap.String("crossQuestion", aiConfig.Models.CrossQuestion),
		zap.String("codeEval", aiConfig.Models.CodeEval),
		zap.String("report", aiConfig.Models.Report),
		zap.Bool("enabled", aiConfig.IsEnabled()),
	)
	if !aiConfig.IsEnabled() {
		logger.Warn("GEMINI_API_KEY not set, using fallback evaluations")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	codingRepo := repository.NewCodingRepo(db)

	// Initialize caches
	problemCache := cache.NewProblemCache(rdb)
	reportCache := cache.NewReportCache(rdb)

	// Initialize services
	sbx := sandbox.New(cfg.PythonBin, time.Duration(cfg.SandboxTimeout)*time.Second)
	evaluator := service.NewEvaluatorService(aiConfig, logger)
	reportSvc := service.NewReportService(evaluator, logger)
	reportSvc.SetReportCache(reportCache)
	sessionSvc := service.NewSessionService(evaluator, reportSvc, sbx, logger)
	sessionSvc.SetStore(sessionRepo, questionRepo, answerRepo, codingRepo)
	sessionSvc.SetProblemCache(problemCache)

	router := rest.NewRouter(&rest.Container{
		SessionService: sessionSvc,
		ReportService:  reportSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
