package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	BuildingsCSV    string
	ResidentsCSV    string
	TransactionsCSV string
	RepairsCSV      string
	RulesJSON       string
	Port            string
	Environment     string
	LogLevel        string
	ExportPath      string
	// ML configuration; defaults are the fixed hyperparameters and should
	// only be overridden for experiments.
	NumTrees int
	MaxDepth int
	TestSize float64
	Seed     int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		BuildingsCSV:    getEnv("BUILDINGS_CSV", "csv_data/sample_buildings.csv"),
		ResidentsCSV:    getEnv("RESIDENTS_CSV", "csv_data/sample_residents.csv"),
		TransactionsCSV: getEnv("TRANSACTIONS_CSV", "csv_data/transactions.csv"),
		RepairsCSV:      getEnv("REPAIRS_CSV", "csv_data/repairs.csv"),
		RulesJSON:       getEnv("RULES_JSON", "nmmc_rules.json"),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ExportPath:      getEnv("EXPORT_PATH", ""),
		NumTrees:        getEnvAsInt("ML_NUM_TREES", 100),
		MaxDepth:        getEnvAsInt("ML_MAX_DEPTH", 10),
		TestSize:        getEnvAsFloat("ML_TEST_SIZE", 0.2),
		Seed:            getEnvAsInt64("ML_SEED", 42),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
