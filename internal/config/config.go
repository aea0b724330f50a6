package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	SMTPHost      string
	SMTPPort      string
	SMTPFrom      string
	PublicBaseURL string
}

func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "bazaar.db"), // sqlite file in project root
		MediaDir:      getenv("MEDIA_DIR", "./web/media"),
		LogFile:       getenv("LOG_FILE", "./bazaar.log"),
		SMTPHost:      getenv("SMTP_HOST", "localhost"),
		SMTPPort:      getenv("SMTP_PORT", "1025"),
		SMTPFrom:      getenv("SMTP_FROM", "noreply@bazaar.local"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s SMTP=%s:%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.SMTPHost, cfg.SMTPPort)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
