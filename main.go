package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"educa-app/config"
	"educa-app/database"
	routes "educa-app/internal/app/http"
	"educa-app/internal/app/logging"
	"educa-app/internal/app/metrics"
	"educa-app/internal/domain/authoring"
	"educa-app/internal/domain/content"
	"educa-app/internal/infra/blobstore"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func newBlobStore(ctx context.Context) blobstore.Store {
	if config.MINIO_ENDPOINT == "" {
		slog.Warn("MINIO_ENDPOINT not set; keeping uploads in memory")
		return blobstore.NewMemory("/media")
	}
	store, err := blobstore.NewMinIO(ctx, blobstore.MinIOConfig{
		Endpoint:  config.MINIO_ENDPOINT,
		AccessKey: config.MINIO_ACCESS_KEY,
		SecretKey: config.MINIO_SECRET_KEY,
		UseSSL:    config.MINIO_USE_SSL,
		Bucket:    config.MINIO_BUCKET,
		URLTTL:    config.MEDIA_URL_TTL,
	})
	if err != nil {
		slog.Error("failed to init blob store", "err", err)
		os.Exit(1)
	}
	return store
}

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	slog.SetDefault(logging.New(os.Stdout, config.LOG_LEVEL))

	database.InitDB()
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	blobs := newBlobStore(context.Background())
	svc := &authoring.Service{
		DB:       database.DB,
		Registry: content.NewRegistry(blobs),
		Blobs:    blobs,
		Log:      slog.Default(),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{Authoring: svc, MaxUpload: config.UPLOAD_MAX_BYTES})

	if err := r.Run(":" + config.PORT); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
