package locations

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/reader/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "locations.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ReadingProgress{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db)
}

func TestRepository_SaveLocation_New(t *testing.T) {
	repo := setupTestDB(t)

	loc := entities.Location{
		Index:      3,
		Href:       "chapter03.xhtml",
		Start:      "epubcfi(/6/8!/4/2/1:0)",
		End:        "epubcfi(/6/8!/4/10/1:120)",
		Percentage: 0.25,
	}
	require.NoError(t, repo.SaveLocation(1, loc))

	progress, err := repo.GetLocation(1)
	require.NoError(t, err)
	assert.Equal(t, loc, progress.Location)
	assert.False(t, progress.UpdatedAt.IsZero())
}

func TestRepository_SaveLocation_Replaces(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SaveLocation(1, entities.Location{Index: 1, Percentage: 0.1}))
	require.NoError(t, repo.SaveLocation(1, entities.Location{Index: 2, Href: "c2.xhtml", Percentage: 0.2}))

	progress, err := repo.GetLocation(1)
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Location.Index)
	assert.Equal(t, "c2.xhtml", progress.Location.Href)
	assert.InDelta(t, 0.2, progress.Location.Percentage, 1e-9)

	var count int64
	require.NoError(t, repo.db.Model(&entities.ReadingProgress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_SaveLocation_PerBook(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SaveLocation(1, entities.Location{Index: 1}))
	require.NoError(t, repo.SaveLocation(2, entities.Location{Index: 7}))

	first, err := repo.GetLocation(1)
	require.NoError(t, err)
	second, err := repo.GetLocation(2)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Location.Index)
	assert.Equal(t, 7, second.Location.Index)
}

func TestRepository_GetLocation_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetLocation(42)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
