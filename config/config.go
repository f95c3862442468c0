package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the citizen reporting service
type Config struct {
	// Server configuration
	Port           string
	MaxUploadBytes int64

	// LLM provider configuration
	LLMProvider  string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Reverse geocoding configuration
	NominatimBaseURL string
	GeocodeTimeout   time.Duration

	// Static data files
	DataDir           string
	MunicipalRoster   string // trash + pothole officials
	ElectricityRoster string
	EventsFile        string
	EventsDaysAhead   int

	// Database configuration (optional; persistence is skipped when DBHost is empty)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// RabbitMQ configuration (optional; publishing is skipped when URL is empty)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// SendGrid configuration (optional; drafted emails are not sent without a key)
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Server defaults
		Port:           getEnv("PORT", "8080"),
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 10*1024*1024),

		// LLM defaults; the assistant originally ran on Gemini
		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		// Geocoding defaults
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeTimeout:   getDurationEnv("GEOCODE_TIMEOUT", 10*time.Second),

		// Static data defaults
		DataDir:           getEnv("DATA_DIR", "data"),
		MunicipalRoster:   getEnv("MUNICIPAL_ROSTER", "bbmp.csv"),
		ElectricityRoster: getEnv("ELECTRICITY_ROSTER", "bescom.csv"),
		EventsFile:        getEnv("EVENTS_FILE", "events.csv"),
		EventsDaysAhead:   getIntEnv("EVENTS_DAYS_AHEAD", 14),

		// Database defaults
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "citybuddy"),

		// RabbitMQ defaults
		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "citybuddy"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "workflow.completed"),

		// SendGrid defaults
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "City Buddy"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "reports@citybuddy.local"),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64Env gets an int64 environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
