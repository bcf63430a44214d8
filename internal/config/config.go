// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Telegram
	TelegramToken string
	AdminChatID   int64

	// PostgreSQL: either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Federation calendar source.
	FAMBaseURL      string
	FAMCalendarPath string

	// Daily job times (local to Timezone).
	ScrapeHour    int
	ScrapeMinute  int
	NotifyHour    int
	NotifyMinute  int
	CleanupHour   int
	CleanupMinute int
	Timezone      string

	Debug bool
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	// A missing .env file is fine; production uses real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("DB_USER", "fam")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "famevents")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("FAM_BASE_URL", "https://www.atletismomadrid.com")
	v.SetDefault("FAM_CALENDAR_PATH", "/index.php?option=com_content&view=article&id=3292&Itemid=111")
	v.SetDefault("SCRAPE_HOUR", 9)
	v.SetDefault("SCRAPE_MINUTE", 0)
	v.SetDefault("NOTIFY_HOUR", 10)
	v.SetDefault("NOTIFY_MINUTE", 0)
	v.SetDefault("CLEANUP_HOUR", 4)
	v.SetDefault("CLEANUP_MINUTE", 0)
	v.SetDefault("TIMEZONE", "Europe/Madrid")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		TelegramToken:   v.GetString("TELEGRAM_BOT_TOKEN"),
		AdminChatID:     v.GetInt64("ADMIN_CHAT_ID"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DBUser:          v.GetString("DB_USER"),
		DBPass:          v.GetString("DB_PASS"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBName:          v.GetString("DB_NAME"),
		DBSSLMode:       v.GetString("DB_SSLMODE"),
		FAMBaseURL:      v.GetString("FAM_BASE_URL"),
		FAMCalendarPath: v.GetString("FAM_CALENDAR_PATH"),
		ScrapeHour:      v.GetInt("SCRAPE_HOUR"),
		ScrapeMinute:    v.GetInt("SCRAPE_MINUTE"),
		NotifyHour:      v.GetInt("NOTIFY_HOUR"),
		NotifyMinute:    v.GetInt("NOTIFY_MINUTE"),
		CleanupHour:     v.GetInt("CLEANUP_HOUR"),
		CleanupMinute:   v.GetInt("CLEANUP_MINUTE"),
		Timezone:        v.GetString("TIMEZONE"),
		Debug:           v.GetBool("DEBUG"),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
}
