package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Razorpay RazorpayConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RazorpayConfig struct {
	KeyID          string
	KeySecret      string
	TimeoutSeconds int64
}

type AuthConfig struct {
	// Emergent auth 的 session-data endpoint
	ProviderURL    string
	SessionTTLDays int
}

var AppConfig *Config

func LoadConfig() *Config {
	// 沒有 .env 就直接用系統環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Razorpay: GetRazorpayConfig(),
		Auth:     GetAuthConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Razorpay: RazorpayConfig{
			KeyID:          "test_key",
			KeySecret:      "test_secret",
			TimeoutSeconds: 10,
		},
		Auth: AuthConfig{
			ProviderURL:    "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data",
			SessionTTLDays: 7,
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "quickqueue"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetRazorpayConfig() RazorpayConfig {
	timeout, err := strconv.ParseInt(getEnv("RAZORPAY_TIMEOUT_SECONDS", "10"), 10, 64)
	if err != nil {
		panic(err)
	}

	return RazorpayConfig{
		KeyID:          getEnv("RAZORPAY_KEY_ID", "test_key"),
		KeySecret:      getEnv("RAZORPAY_KEY_SECRET", "test_secret"),
		TimeoutSeconds: timeout,
	}
}

func GetAuthConfig() AuthConfig {
	days, err := strconv.Atoi(getEnv("SESSION_TTL_DAYS", "7"))
	if err != nil {
		panic(err)
	}

	return AuthConfig{
		ProviderURL:    getEnv("AUTH_PROVIDER_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"),
		SessionTTLDays: days,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
