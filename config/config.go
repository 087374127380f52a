package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	LOG_LEVEL   string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	MINIO_ENDPOINT   string
	MINIO_ACCESS_KEY string
	MINIO_SECRET_KEY string
	MINIO_USE_SSL    bool
	MINIO_BUCKET     string

	MEDIA_URL_TTL    time.Duration
	UPLOAD_MAX_BYTES int64
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_BUCKET", "educa-media")
	viper.SetDefault("MEDIA_URL_TTL", "15m")
	viper.SetDefault("UPLOAD_MAX_BYTES", 32<<20)

	PORT = viper.GetString("PORT")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = viper.GetString("CORS_ORIGIN")
	LOG_LEVEL = viper.GetString("LOG_LEVEL")

	// Google sign-in is optional; the routes answer 503 when unset.
	GOOGLE_CLIENT_ID = viper.GetString("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = viper.GetString("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = viper.GetString("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = viper.GetString("GOOGLE_FRONTEND_REDIRECT")

	// Empty endpoint means blobs are kept in memory.
	MINIO_ENDPOINT = viper.GetString("MINIO_ENDPOINT")
	MINIO_ACCESS_KEY = viper.GetString("MINIO_ACCESS_KEY")
	MINIO_SECRET_KEY = viper.GetString("MINIO_SECRET_KEY")
	MINIO_USE_SSL = viper.GetBool("MINIO_USE_SSL")
	MINIO_BUCKET = viper.GetString("MINIO_BUCKET")

	MEDIA_URL_TTL = viper.GetDuration("MEDIA_URL_TTL")
	UPLOAD_MAX_BYTES = viper.GetInt64("UPLOAD_MAX_BYTES")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
}

func mustEnv(key string) string {
	v := viper.GetString(key)
	if v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}
