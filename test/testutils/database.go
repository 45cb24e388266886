package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/sqlite"
)

// SetupTestDatabase returns an in-memory SQLite database with the schema
// migrated, closed automatically when the test finishes.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase("", gormlogger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
