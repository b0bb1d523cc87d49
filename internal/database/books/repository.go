// Package books provides database operations for books and their highlights.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(123)
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/entities"
)

// Repository handles all book and highlight database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveBook upserts a book by title and author. On update the stored metadata
// is replaced with the given one and book.ID is set to the existing row.
func (r *Repository) SaveBook(book *entities.Book) error {
	var existing entities.Book
	err := r.db.Where("title = ? AND author = ?", book.Title, book.Author).First(&existing).Error

	switch {
	case err == nil:
		book.ID = existing.ID
		book.CreatedAt = existing.CreatedAt
		return r.db.Omit("Highlights", "Progress").Save(book).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.Omit("Highlights", "Progress").Create(book).Error
	default:
		return fmt.Errorf("failed to look up book: %w", err)
	}
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves all books ordered by title.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title ASC").Find(&books).Error
	return books, err
}

// SearchBooks matches the query against title and author, case-insensitively.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", searchPattern, searchPattern).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetBookStats returns the number of books and highlights.
func (r *Repository) GetBookStats() (totalBooks int64, totalHighlights int64, err error) {
	err = r.db.Model(&entities.Book{}).Count(&totalBooks).Error
	if err != nil {
		return
	}
	err = r.db.Model(&entities.Highlight{}).
		Joins("JOIN books ON books.id = highlights.book_id AND books.deleted_at IS NULL").
		Count(&totalHighlights).Error
	return
}

// DeleteBook performs a soft delete. Highlights and progress stay until PurgeBook.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PurgeBook hard deletes a book together with its highlights and reading progress.
func (r *Repository) PurgeBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.Highlight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.ReadingProgress{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entities.Book{}, id).Error
	})
}

// PurgeDeletedBooks hard deletes every soft-deleted book along with rows that
// reference books which no longer exist. Returns the number of purged books.
func (r *Repository) PurgeDeletedBooks() (int64, error) {
	var ids []uint
	err := r.db.Unscoped().Model(&entities.Book{}).
		Where("deleted_at IS NOT NULL").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list deleted books: %w", err)
	}

	for _, id := range ids {
		if err := r.PurgeBook(id); err != nil {
			return 0, fmt.Errorf("failed to purge book %d: %w", id, err)
		}
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		orphaned := "book_id NOT IN (SELECT id FROM books)"
		if err := tx.Where(orphaned).Delete(&entities.Highlight{}).Error; err != nil {
			return err
		}
		return tx.Where(orphaned).Delete(&entities.ReadingProgress{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned rows: %w", err)
	}

	return int64(len(ids)), nil
}
