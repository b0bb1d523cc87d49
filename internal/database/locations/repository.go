// Package locations stores the last reading position of each book.
package locations

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/reader/internal/entities"
)

// Repository handles reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new locations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveLocation stores loc as the current position of a book, replacing any
// previous one.
func (r *Repository) SaveLocation(bookID uint, loc entities.Location) error {
	progress := entities.ReadingProgress{
		BookID:    bookID,
		Location:  loc,
		UpdatedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"location_index",
			"location_href",
			"location_start",
			"location_end",
			"location_percentage",
			"updated_at",
		}),
	}).Create(&progress).Error
}

// GetLocation returns the stored position of a book.
func (r *Repository) GetLocation(bookID uint) (*entities.ReadingProgress, error) {
	var progress entities.ReadingProgress
	err := r.db.Where("book_id = ?", bookID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
