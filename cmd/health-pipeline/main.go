package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/ajharbinger/building-health-pipeline/internal/logger"
	"github.com/ajharbinger/building-health-pipeline/internal/ml"
	"github.com/ajharbinger/building-health-pipeline/internal/repository"
	"github.com/ajharbinger/building-health-pipeline/internal/services"
	"github.com/ajharbinger/building-health-pipeline/pkg/config"
)

func main() {
	fmt.Println("🏢 Building Health Scoring Pipeline")
	fmt.Println("===================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	appLogger := logger.NewSimpleLoggerWithLevel(logger.ParseLevel(cfg.LogLevel))

	// Load the dataset
	store := repository.NewFileStore(cfg, appLogger)
	dataset, err := store.Load()
	if err != nil {
		log.Fatal("Failed to load dataset:", err)
	}

	// Run the scoring batch
	now := time.Now()
	processor := services.NewBatchProcessorAt(now, appLogger)
	result, err := processor.Process(dataset)
	if err != nil {
		log.Fatal("Batch run failed:", err)
	}

	printRankings(result)

	// Train the models
	mlConfig := ml.Config{
		NumTrees: cfg.NumTrees,
		MaxDepth: cfg.MaxDepth,
		TestSize: cfg.TestSize,
		Seed:     cfg.Seed,
	}
	trainingService := services.NewTrainingServiceAt(now, mlConfig, appLogger)
	training, err := trainingService.Train(dataset, result)
	if err != nil {
		log.Fatal("Model training failed:", err)
	}

	printInsights(training)

	// Export to Excel when a path is configured
	if cfg.ExportPath != "" {
		exporter := services.NewExportService(appLogger)
		if err := exporter.Export(cfg.ExportPath, result); err != nil {
			log.Fatal("Export failed:", err)
		}
		fmt.Printf("\n📄 Results exported to %s\n", cfg.ExportPath)
	}
}

func printRankings(result *services.BatchResult) {
	fmt.Printf("\n📊 Health Rankings (run %s)\n", result.RunID)
	fmt.Printf("%-4s %-10s %-28s %8s %8s %8s %8s %-7s %10s\n",
		"Rank", "ID", "Name", "Fin", "Struct", "People", "BHI", "Tier", "Compliance")
	for i, r := range result.Reports {
		fmt.Printf("%-4d %-10s %-28s %8.1f %8.1f %8.1f %8.1f %-7s %9.1f%%\n",
			i+1, r.BuildingID, truncate(r.BuildingName, 28),
			r.FinancialScore, r.StructuralScore, r.PeopleScore,
			r.BHI, r.Color, r.ComplianceScore)
	}
	for _, s := range result.Skipped {
		fmt.Printf("   ⚠ skipped %s: %s\n", s.BuildingID, s.Reason)
	}
}

func printInsights(training *services.TrainingOutput) {
	fmt.Println("\n🤖 Model Insights")
	results := training.Results

	if results.Classifier != nil {
		fmt.Printf("   • Risk classifier accuracy: %.3f (%d train / %d test)\n",
			results.Classifier.Accuracy, results.Classifier.TrainSize, results.Classifier.TestSize)
	} else {
		fmt.Printf("   • Risk classifier skipped: %s\n", results.ClassifierSkipReason)
		fmt.Printf("     Class distribution: %v\n", results.ClassDistribution)
	}

	if results.Regressor != nil {
		fmt.Printf("   • BHI regressor R²: %.3f, MAE: %.2f\n",
			results.Regressor.R2, results.Regressor.MAE)
	} else {
		fmt.Printf("   • BHI regressor skipped: %s\n", results.RegressorSkipReason)
	}

	if importances := topImportances(results); len(importances) > 0 {
		fmt.Println("   • Top feature importances:")
		for i, fi := range importances {
			fmt.Printf("     %d. %s (%.3f)\n", i+1, fi.Feature, fi.Importance)
		}
	}
}

// topImportances picks the leading feature importances from whichever model
// trained, preferring the regressor.
func topImportances(results ml.Results) []ml.FeatureImportance {
	var importances []ml.FeatureImportance
	switch {
	case results.Regressor != nil:
		importances = results.Regressor.Importances
	case results.Classifier != nil:
		importances = results.Classifier.Importances
	}
	if len(importances) > 5 {
		importances = importances[:5]
	}
	return importances
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
