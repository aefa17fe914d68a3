package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	User           string
	Password       string
	Name           string
	Host           string
	Port           int
	SSLMode        string
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens for the staff and admin
	// routes. Empty disables auth, which is only meant for local runs.
	JWTSecret string
}

type LimitsConfig struct {
	SubmitPerWindow int
	SubmitWindow    time.Duration
	CatalogTTL      time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	pgHost := os.Getenv("POSTGRES_HOST")
	if pgHost == "" {
		pgHost = "localhost"
	}

	pgPortStr := os.Getenv("POSTGRES_PORT")
	if pgPortStr == "" {
		pgPortStr = "5432"
	}

	pgPort, err := strconv.Atoi(pgPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
	}

	pgUser := os.Getenv("POSTGRES_USER")
	if pgUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	pgPassword := os.Getenv("POSTGRES_PASSWORD")
	if pgPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	pgName := os.Getenv("POSTGRES_DB")
	if pgName == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	pgSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if pgSSLMode == "" {
		pgSSLMode = "disable"
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "file://migrations"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		redisDB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
		}
	}

	limits := LimitsConfig{
		SubmitPerWindow: 10,
		SubmitWindow:    time.Minute,
		CatalogTTL:      time.Minute,
	}
	if v := os.Getenv("SUBMIT_RATE_LIMIT"); v != "" {
		limits.SubmitPerWindow, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid SUBMIT_RATE_LIMIT: %w", op, err)
		}
	}
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		limits.CatalogTTL, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid CATALOG_CACHE_TTL: %w", op, err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Postgres: PostgresConfig{
			User:           pgUser,
			Password:       pgPassword,
			Name:           pgName,
			Host:           pgHost,
			Port:           pgPort,
			SSLMode:        pgSSLMode,
			MigrationsPath: migrationsPath,
		},
		Redis: RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Limits: limits,
	}, nil
}
