package books

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/utils"
)

// SaveHighlight upserts a highlight of a book by its key. A missing key is
// generated, missing timestamps default to now and a missing color to the
// first palette color.
func (r *Repository) SaveHighlight(bookID uint, highlight *entities.Highlight) error {
	if _, err := r.GetBookByID(bookID); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	highlight.BookID = bookID
	if highlight.Key == "" {
		highlight.Key = uuid.NewString()
	}
	if highlight.CreateTime == "" {
		highlight.CreateTime = now
	}
	if highlight.AccessTime == "" {
		highlight.AccessTime = highlight.CreateTime
	}
	if highlight.Color == "" {
		highlight.Color = utils.DefaultHighlightColor
	}

	var existing entities.Highlight
	err := r.db.Where("book_id = ? AND key = ?", bookID, highlight.Key).First(&existing).Error
	switch {
	case err == nil:
		highlight.ID = existing.ID
		highlight.CreatedAt = existing.CreatedAt
		return r.db.Omit("Book").Save(highlight).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.Omit("Book").Create(highlight).Error
	default:
		return fmt.Errorf("failed to look up highlight: %w", err)
	}
}

// GetHighlightsForBook retrieves all highlights of a book in reading order.
func (r *Repository) GetHighlightsForBook(bookID uint) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	err := r.db.Where("book_id = ?", bookID).
		Order("page_num ASC, create_time ASC").Find(&highlights).Error
	return highlights, err
}

// GetHighlightByKey retrieves a single highlight of a book.
func (r *Repository) GetHighlightByKey(bookID uint, key string) (*entities.Highlight, error) {
	var highlight entities.Highlight
	err := r.db.Where("book_id = ? AND key = ?", bookID, key).First(&highlight).Error
	if err != nil {
		return nil, err
	}
	return &highlight, nil
}

// TouchHighlight records that a highlight was opened at the given time.
func (r *Repository) TouchHighlight(bookID uint, key string, at time.Time) (*entities.Highlight, error) {
	highlight, err := r.GetHighlightByKey(bookID, key)
	if err != nil {
		return nil, err
	}
	highlight.AccessTime = at.UTC().Format(time.RFC3339)
	if err := r.db.Model(highlight).Update("access_time", highlight.AccessTime).Error; err != nil {
		return nil, err
	}
	return highlight, nil
}

// UpdateHighlightColor changes the color of a highlight.
func (r *Repository) UpdateHighlightColor(bookID uint, key, color string) error {
	result := r.db.Model(&entities.Highlight{}).
		Where("book_id = ? AND key = ?", bookID, key).
		Update("color", color)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteHighlight removes a highlight.
func (r *Repository) DeleteHighlight(bookID uint, key string) error {
	result := r.db.Where("book_id = ? AND key = ?", bookID, key).Delete(&entities.Highlight{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
