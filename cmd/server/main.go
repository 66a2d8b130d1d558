package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/building-health-pipeline/internal/api"
	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/ml"
	"github.com/ajharbinger/building-health-pipeline/internal/repository"
	"github.com/ajharbinger/building-health-pipeline/internal/services"
	"github.com/ajharbinger/building-health-pipeline/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	appLogger := logger.NewSimpleLoggerWithLevel(logger.ParseLevel(cfg.LogLevel))

	// Load the dataset and run the pipeline once at startup; the API serves
	// that run's results.
	store := repository.NewFileStore(cfg, appLogger)
	dataset, err := store.Load()
	if err != nil {
		log.Fatal("Failed to load dataset:", err)
	}

	now := time.Now()
	processor := services.NewBatchProcessorAt(now, appLogger)
	result, err := processor.Process(dataset)
	if err != nil {
		log.Fatal("Batch run failed:", err)
	}

	mlConfig := ml.Config{
		NumTrees: cfg.NumTrees,
		MaxDepth: cfg.MaxDepth,
		TestSize: cfg.TestSize,
		Seed:     cfg.Seed,
	}
	trainingService := services.NewTrainingServiceAt(now, mlConfig, appLogger)
	training, err := trainingService.Train(dataset, result)
	if err != nil {
		// The scoring API is still useful without models.
		appLogger.Error("model training failed, serving scores only", err)
		training = nil
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Setup API routes
	api.SetupRoutes(r, result, training)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
