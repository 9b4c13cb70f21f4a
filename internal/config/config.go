package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/models"
)

const (
	SessionModeStateful  = "stateful"
	SessionModeStateless = "stateless"

	LogoutPolicyDelete     = "delete"
	LogoutPolicyInvalidate = "invalidate"
)

type Config struct {
	PORT string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET     string
	REFRESH_SECRET string

	KAFKA_ADDRESS string
	EVENTS_TOPIC  string
	EMAIL_TOPIC   string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	AUDIT_INDEX string

	// ORIGIN_URL is the front end base url embedded in verification mails.
	ORIGIN_URL string

	ACCESS_TTL  time.Duration
	REFRESH_TTL time.Duration

	SESSION_MODE  string
	LOGOUT_POLICY string

	LOG_LEVEL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT: EnvDefault("PORT", "8080"),

		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		EVENTS_TOPIC:  EnvDefault("EVENTS_TOPIC", "auth_events"),
		EMAIL_TOPIC:   EnvDefault("EMAIL_TOPIC", "email_jobs"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
		AUDIT_INDEX: EnvDefault("AUDIT_INDEX", "auth_audit"),

		ORIGIN_URL: EnvDefault("ORIGIN_URL", "http://localhost:3000"),

		ACCESS_TTL:  EnvDurationDefault("ACCESS_TTL", 15*time.Minute),
		REFRESH_TTL: EnvDurationDefault("REFRESH_TTL", 30*24*time.Hour),

		SESSION_MODE:  EnvDefault("SESSION_MODE", SessionModeStateful),
		LOGOUT_POLICY: EnvDefault("SESSION_LOGOUT_POLICY", LogoutPolicyDelete),

		LOG_LEVEL: EnvDefault("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.JWT_SECRET == "" {
		return fmt.Errorf("missing required env JWT_SECRET")
	}
	if c.REFRESH_SECRET == "" {
		return fmt.Errorf("missing required env REFRESH_SECRET")
	}
	if c.REFRESH_TTL <= c.ACCESS_TTL {
		return fmt.Errorf("REFRESH_TTL (%s) must exceed ACCESS_TTL (%s)", c.REFRESH_TTL, c.ACCESS_TTL)
	}
	switch c.SESSION_MODE {
	case SessionModeStateful, SessionModeStateless:
	default:
		return fmt.Errorf("unknown SESSION_MODE %q", c.SESSION_MODE)
	}
	switch c.LOGOUT_POLICY {
	case LogoutPolicyDelete, LogoutPolicyInvalidate:
	default:
		return fmt.Errorf("unknown SESSION_LOGOUT_POLICY %q", c.LOGOUT_POLICY)
	}
	return nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}
