// File: internal/config/config.go
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	EncryptionKey string // 64 hex characters; parsed by secrets.NewCipherFromHex
	TokenLifetime time.Duration
	Host          string
	Port          int
	Environment   string
	LogLevel      string
	CORSOrigins   []string
}

// Addr is the network bind address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

// Load reads the optional .env file (outside production) and then the environment.
// envFile may be empty to use ./.env.
func Load(envFile string) (*Config, error) {
	env := firstNonEmpty(os.Getenv("NODE_ENV"), os.Getenv("ENV"))
	if strings.ToLower(env) != EnvProduction {
		var err error
		if envFile != "" {
			err = godotenv.Load(envFile)
		} else {
			err = godotenv.Load()
		}
		if err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}
	return New()
}

// New builds a Config from the current environment and validates it.
// All problems are reported together.
func New() (*Config, error) {
	var problems []error

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		Host:          getEnv("HOST", "0.0.0.0"),
		Environment:   strings.ToLower(firstNonEmpty(os.Getenv("NODE_ENV"), os.Getenv("ENV"), EnvDevelopment)),
		LogLevel:      getEnv("LOG_LEVEL", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "")),
	}

	port, err := getEnvAsInt("PORT", 3000)
	if err != nil || port <= 0 || port > 65535 {
		problems = append(problems, errors.New("PORT must be a valid TCP port"))
	}
	cfg.Port = port

	lifetime, err := ParseLifetime(getEnv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		problems = append(problems, fmt.Errorf("JWT_EXPIRES_IN: %w", err))
	}
	cfg.TokenLifetime = lifetime

	if cfg.DatabaseURL == "" {
		problems = append(problems, errors.New("DATABASE_URL is required"))
	}
	if len(cfg.JWTSecret) < 32 {
		problems = append(problems, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if len(cfg.EncryptionKey) != 64 {
		problems = append(problems, errors.New("ENCRYPTION_KEY must be 64 hex characters (32 bytes)"))
	} else if _, err := hex.DecodeString(cfg.EncryptionKey); err != nil {
		problems = append(problems, errors.New("ENCRYPTION_KEY must be hex-encoded"))
	}
	switch cfg.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		problems = append(problems, fmt.Errorf("NODE_ENV must be one of development, production, test; got %q", cfg.Environment))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}
	return cfg, nil
}

// ParseLifetime accepts Go durations ("12h", "90m") and whole days ("7d").
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("lifetime must be positive, got %s", s)
	}
	return d, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(strValue)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
