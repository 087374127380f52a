package database

import (
	"log/slog"
	"os"

	"educa-app/internal/domain/content"
	"educa-app/internal/domain/courses"
	"educa-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		// core
		&users.User{},

		// payloads
		&content.Text{},
		&content.File{},
		&content.Image{},
		&content.Video{},

		// catalog
		&courses.Subject{},
		&courses.Course{},
		&courses.Module{},
		&courses.Content{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("DB_URL not set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		slog.Error("auto-migrate failed", "err", err)
		os.Exit(1)
	}

	slog.Info("connected and migrated")
}
