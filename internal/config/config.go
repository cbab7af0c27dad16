package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	AI struct {
		APIKey         string `yaml:"api_key" env:"AI_API_KEY"`
		BatchEndpoint  string `yaml:"batch_endpoint" env:"AI_BATCH_ENDPOINT"`
		BatchModel     string `yaml:"batch_model" env:"AI_BATCH_MODEL"`
		StreamEndpoint string `yaml:"stream_endpoint" env:"AI_STREAM_ENDPOINT"`
		StreamModel    string `yaml:"stream_model" env:"AI_STREAM_MODEL"`
		RequestTimeout string `yaml:"request_timeout" env:"AI_REQUEST_TIMEOUT"`

		// Character budgets for prompt content per artifact kind.
		FlashcardCharBudget int `yaml:"flashcard_char_budget" env:"AI_FLASHCARD_CHAR_BUDGET"`
		QuizCharBudget      int `yaml:"quiz_char_budget" env:"AI_QUIZ_CHAR_BUDGET"`
		SummaryCharBudget   int `yaml:"summary_char_budget" env:"AI_SUMMARY_CHAR_BUDGET"`
	} `yaml:"ai"`

	Study struct {
		MasteryMin  int `yaml:"mastery_min" env:"STUDY_MASTERY_MIN"`
		MasteryMax  int `yaml:"mastery_max" env:"STUDY_MASTERY_MAX"`
		MasteryStep int `yaml:"mastery_step" env:"STUDY_MASTERY_STEP"`
	} `yaml:"study"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A local .env is optional
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "planora"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "planora.app"

	config.AI.BatchEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	config.AI.BatchModel = "gemini-2.0-flash"
	config.AI.StreamEndpoint = "https://api.openai.com/v1/chat/completions"
	config.AI.StreamModel = "gpt-4o-mini"
	config.AI.RequestTimeout = "90s"
	config.AI.FlashcardCharBudget = 8000
	config.AI.QuizCharBudget = 8000
	config.AI.SummaryCharBudget = 50000

	config.Study.MasteryMin = 0
	config.Study.MasteryMax = 5
	config.Study.MasteryStep = 1

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Study.MasteryMin >= config.Study.MasteryMax {
		return fmt.Errorf("mastery bounds are inverted: min %d, max %d", config.Study.MasteryMin, config.Study.MasteryMax)
	}
	if config.Study.MasteryStep <= 0 {
		return fmt.Errorf("mastery step must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	switch valueStr {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
