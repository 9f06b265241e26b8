package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBName     string
	SQLitePath      string
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warn().Msg("Error loading .env file")
	}

	shutdownTimeout, err := time.ParseDuration(os.Getenv("SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = time.Second * 5
	}

	return &Config{
		Port:            GetString("POST_SERVICE_PORT", ":8080"),
		MongoDBURI:      GetString("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:     GetString("MONGODB_NAME", "forum"),
		SQLitePath:      GetString("SQLITE_PATH", "keys.db"),
		ShutdownTimeout: shutdownTimeout,
	}
}

func GetString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetInt(key string, defaultValue int) int {
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

func GetBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
