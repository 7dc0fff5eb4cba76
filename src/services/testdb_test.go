package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.SiteModel{},
		&models.ArtifactModel{},
		&models.EventModel{},
		&models.MerchandiseModel{},
		&models.ArticleModel{},
		&models.DiaryEntryModel{},
		&models.DropdownOptionsModel{},
	))

	return db
}

// rejectOrderedQueries makes every query carrying an ORDER BY clause fail,
// simulating a store that lacks the index the ordered scan needs.
func rejectOrderedQueries(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("reject_ordered", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["ORDER BY"]; ok {
			tx.AddError(errors.New("query requires an index"))
		}
	}))
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
