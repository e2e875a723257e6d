package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Conf holds every runtime setting. Keys are read from the environment on
// each lookup, so tests can override them with os.Setenv.
var Conf *viper.Viper

func init() {
	Conf = viper.New()

	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("port", "5000")
	Conf.SetDefault("database_dsn", "host=localhost user=postgres dbname=quizdb sslmode=disable")
	Conf.SetDefault("admin_username", "admin")
	Conf.SetDefault("admin_password", "admin123")
	Conf.SetDefault("admin_password_hash", "")
	Conf.SetDefault("crypto_key", "")
	Conf.SetDefault("redis_addr", "")
	Conf.SetDefault("redis_password", "")
	Conf.SetDefault("allowed_origins", "http://localhost:5173,http://localhost:3000,https://cse-web-quiz.vercel.app")
	Conf.SetDefault("allowed_origin_suffix", ".vercel.app")
	Conf.SetDefault("violation_debounce", 500*time.Millisecond)
	Conf.SetDefault("heavy_violation_threshold", 2)
	Conf.SetDefault("token_ttl", 24*time.Hour)
	Conf.SetDefault("log_level", "info")
	Conf.SetDefault("gemini_model", "gemini-2.0-flash")

	Conf.AutomaticEnv()
}

// Init loads an optional .env file and configures the process logger.
func Init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			Logger.WithError(err).Fatal("failed to load .env")
		}
	}

	level, err := logrus.ParseLevel(Conf.GetString("log_level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(Conf.GetString("allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// OriginAllowed reports whether a browser origin may call the API. Empty
// origins (curl, server to server) are always allowed.
func OriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range AllowedOrigins() {
		if o == origin {
			return true
		}
	}
	suffix := Conf.GetString("allowed_origin_suffix")
	return suffix != "" && strings.HasSuffix(origin, suffix)
}
