package database_test

import (
	"testing"

	"educa-app/database"
	"educa-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, database.Migrate(db))

	for _, table := range []string{"users", "texts", "files", "images", "videos", "subjects", "courses", "modules", "contents"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("contents", "idx_content_item"))

	// idempotent
	require.NoError(t, database.Migrate(db))
}
