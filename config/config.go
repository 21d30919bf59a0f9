package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port             string
	DBPath           string
	JWTSecret        string
	TokenTTL         time.Duration
	UploadDir        string
	UploadBaseURL    string
	WeatherAPIKey    string
	AIEndpoint       string
	AIKey            string
	AIModel          string
	KBAllowedDomains []string
	OTPDebug         bool
	CORSOrigins      []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	split := func(v string) []string {
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBPath:           get("DB_PATH", "airrvie.db"),
		JWTSecret:        get("JWT_SECRET", "change-me-in-production"),
		TokenTTL:         ttl,
		UploadDir:        get("UPLOAD_DIR", "uploads"),
		UploadBaseURL:    get("UPLOAD_BASE_URL", "/uploads"),
		WeatherAPIKey:    get("WEATHER_API", ""),
		AIEndpoint:       get("AI_ENDPOINT", ""),
		AIKey:            get("AI_API_KEY", ""),
		AIModel:          get("AI_MODEL", "gpt-4o-mini"),
		KBAllowedDomains: split(get("KB_ALLOWED_DOMAINS", "")),
		OTPDebug:         get("OTP_DEBUG", "false") == "true",
		CORSOrigins:      split(get("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
	logrus.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"db":      cfg.DBPath,
		"uploads": cfg.UploadDir,
	}).Info("configuration loaded")
	return cfg
}
