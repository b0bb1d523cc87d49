package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "reader.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	db := setupTestDB(t)

	assert.NotNil(t, db.Books)
	assert.NotNil(t, db.Locations)
	assert.NotNil(t, db.Settings)
	assert.NoError(t, db.Ping())

	for _, table := range []string{"books", "highlights", "reading_progress", "settings"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}

func TestDatabase_ReadingSession(t *testing.T) {
	db := setupTestDB(t)

	book := &entities.Book{BookInfo: entities.BookInfo{Title: "Walden", Author: "Henry David Thoreau"}}
	require.NoError(t, db.Books.SaveBook(book))

	require.NoError(t, db.Books.SaveHighlight(book.ID, &entities.Highlight{
		CFIRange: "epubcfi(/6/4!/4/2,/1:0,/1:20)",
		Content:  "I went to the woods",
	}))
	require.NoError(t, db.Locations.SaveLocation(book.ID, entities.Location{Index: 4, Percentage: 0.4}))

	progress, err := db.Locations.GetLocation(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, progress.Location.Index)

	require.NoError(t, db.Books.PurgeBook(book.ID))
	_, err = db.Locations.GetLocation(book.ID)
	assert.Error(t, err)
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}
