package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB   int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTelemetryDB int    `mapstructure:"REDIS_TELEMETRY_DB"`

	// Session lifetime in minutes. Sessions idle longer than this expire.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Generative oracle.
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel          string `mapstructure:"GEMINI_MODEL"`
	OracleTimeoutSeconds int    `mapstructure:"ORACLE_TIMEOUT_SECONDS"`

	// Booking consent. When false the DISCOVERY gate is bypassed entirely
	// and every session starts collecting slots immediately.
	ConsentRequired bool `mapstructure:"CONSENT_REQUIRED"`

	// Default minimum knowledge-snippet score before a snippet answer is
	// trusted over the generative fallback. Tenants may override.
	KnowledgeMinScore float64 `mapstructure:"KNOWLEDGE_MIN_SCORE"`

	// Auth for channel adapters (voice/SMS/chat gateways).
	AdapterJWTSecret string `mapstructure:"ADAPTER_JWT_SECRET"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "frontdesk")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_TELEMETRY_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("ORACLE_TIMEOUT_SECONDS", 8)
	viper.SetDefault("CONSENT_REQUIRED", true)
	viper.SetDefault("KNOWLEDGE_MIN_SCORE", 2.0)
	viper.SetDefault("ADAPTER_JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
