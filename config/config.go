package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppMode           string
	JWTSecret         string
	JWTExpiryMin      int
	SessionCodeLength int
	SessionTTLMin     int
	SweepIntervalSec  int
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	VoteRateLimit     int
	VoteRateWindowSec int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:           getEnv("APP_PORT", "9000"),
		AppMode:           getEnv("APP_MODE", "debug"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin:      getEnvAsInt("JWT_EXPIRY_MIN", 720),
		SessionCodeLength: getEnvAsInt("SESSION_CODE_LENGTH", 6),
		SessionTTLMin:     getEnvAsInt("SESSION_TTL_MIN", 120),
		SweepIntervalSec:  getEnvAsInt("SWEEP_INTERVAL_SEC", 60),
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		VoteRateLimit:     getEnvAsInt("VOTE_RATE_LIMIT", 30),
		VoteRateWindowSec: getEnvAsInt("VOTE_RATE_WINDOW_SEC", 60),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
