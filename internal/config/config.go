package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	SMTP     SMTPConfig
	App      AppConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type HTTPConfig struct {
	Addr string
}

// SMTPConfig описывает почтовый транспорт. Пустой Host означает, что письма только логируются.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type AppConfig struct {
	Name string
	URL  string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	_ = godotenv.Load()

	smtpUser := getEnv("SMTP_USER", "")

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "docspace"),
			Password: getEnv("DB_PASSWORD", "docspace"),
			DBName:   getEnv("DB_NAME", "docspace"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     smtpUser,
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "Markdown Collab <"+smtpUser+">"),
		},
		App: AppConfig{
			Name: getEnv("APP_NAME", "Markdown Collab"),
			URL:  getEnv("APP_URL", "http://localhost:3002"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
