package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// MaxRecipeResults is the hard cap on recipes returned by one search
const MaxRecipeResults = 10

// Config holds all configuration for the application
// Values come from defaults, then an optional YAML file, then environment variables
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Store    StoreConfig  `yaml:"store"`
	Recipes  RecipeConfig `yaml:"recipes"`
	View     ViewConfig   `yaml:"view"`
	LogLevel string       `yaml:"log_level"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Host            string `yaml:"host"`
	ReadTimeout     int    `yaml:"read_timeout"`
	WriteTimeout    int    `yaml:"write_timeout"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Backend              string `yaml:"backend"`
	FirestoreProjectID   string `yaml:"firestore_project_id"`
	FirestoreCredentials string `yaml:"firestore_credentials_file"`
	Collection           string `yaml:"collection"`
	PostgresDSN          string `yaml:"postgres_dsn"`
}

type RecipeConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	ResultLimit int    `yaml:"result_limit"`
	Timeout     int    `yaml:"timeout"` // seconds, 0 disables the client timeout
}

type ViewConfig struct {
	LowStockThreshold int `yaml:"low_stock_threshold"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		Store: StoreConfig{
			Backend:    BackendMemory,
			Collection: "inventory",
		},
		Recipes: RecipeConfig{
			BaseURL:     "https://api.spoonacular.com",
			ResultLimit: MaxRecipeResults,
			Timeout:     15,
		},
		View: ViewConfig{
			LowStockThreshold: 1,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from .env, the optional PANTRY_CONFIG_FILE and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("PANTRY_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvAsInt("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", c.Store.Backend))
	c.Store.FirestoreProjectID = getEnv("FIRESTORE_PROJECT_ID", c.Store.FirestoreProjectID)
	c.Store.FirestoreCredentials = getEnv("FIRESTORE_CREDENTIALS_FILE", c.Store.FirestoreCredentials)
	c.Store.Collection = getEnv("INVENTORY_COLLECTION", c.Store.Collection)
	c.Store.PostgresDSN = getEnv("POSTGRES_DSN", c.Store.PostgresDSN)

	// The Next.js frontend exposed the key under its public prefix; accept both
	c.Recipes.APIKey = getEnv("NEXT_PUBLIC_SPOONACULAR_API_KEY", c.Recipes.APIKey)
	c.Recipes.APIKey = getEnv("SPOONACULAR_API_KEY", c.Recipes.APIKey)
	c.Recipes.BaseURL = getEnv("SPOONACULAR_BASE_URL", c.Recipes.BaseURL)
	c.Recipes.ResultLimit = getEnvAsInt("RECIPE_RESULT_LIMIT", c.Recipes.ResultLimit)
	c.Recipes.Timeout = getEnvAsInt("RECIPE_TIMEOUT", c.Recipes.Timeout)

	c.View.LowStockThreshold = getEnvAsInt("LOW_STOCK_THRESHOLD", c.View.LowStockThreshold)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFirestore:
		if c.Store.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
		if c.Store.Collection == "" {
			return fmt.Errorf("INVENTORY_COLLECTION must not be empty")
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, firestore, or postgres)", c.Store.Backend)
	}

	if c.Recipes.BaseURL == "" {
		return fmt.Errorf("SPOONACULAR_BASE_URL is required")
	}
	if c.Recipes.ResultLimit < 1 || c.Recipes.ResultLimit > MaxRecipeResults {
		return fmt.Errorf("RECIPE_RESULT_LIMIT must be between 1 and %d", MaxRecipeResults)
	}
	if c.Recipes.Timeout < 0 {
		return fmt.Errorf("RECIPE_TIMEOUT must not be negative")
	}
	if c.View.LowStockThreshold < 1 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, warning, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
