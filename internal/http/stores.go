package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/settingsstore"
)

// Each controller depends on the narrowest interface it needs. The concrete
// implementations live in database/books, progress, settingsstore and tasks.

// BookStore provides book metadata operations.
type BookStore interface {
	SaveBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	GetBookStats() (totalBooks int64, totalHighlights int64, err error)
	DeleteBook(id uint) error
	PurgeBook(id uint) error
}

// HighlightStore provides highlight operations scoped to a book.
type HighlightStore interface {
	GetBookByID(id uint) (*entities.Book, error)
	SaveHighlight(bookID uint, highlight *entities.Highlight) error
	GetHighlightsForBook(bookID uint) ([]entities.Highlight, error)
	TouchHighlight(bookID uint, key string, at time.Time) (*entities.Highlight, error)
	UpdateHighlightColor(bookID uint, key, color string) error
	DeleteHighlight(bookID uint, key string) error
}

// LocationTracker records reading positions reported by the viewer.
type LocationTracker interface {
	Relocated(bookID uint, loc entities.Location)
	Current(bookID uint) (entities.Location, error)
	Forget(bookID uint)
	Pending() int
}

// PreferencesStore reads and writes the reader's style and layout options.
type PreferencesStore interface {
	GetBookStyle() (entities.BookStyle, error)
	GetBookStyleInfo() (settingsstore.StyleInfo, error)
	SetBookStyle(style entities.BookStyle) error
	GetBookOptionInfo() (settingsstore.OptionInfo, error)
	SetBookOption(option entities.BookOption) error
	Reset() error
}

// PurgeScheduler queues the permanent removal of a deleted book.
type PurgeScheduler interface {
	SchedulePurge(bookID uint) (string, error)
}

// TaskStatusReader reports the state of a queued task.
type TaskStatusReader interface {
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// CleanupScheduler queues a sweep of books that were deleted but not purged.
type CleanupScheduler interface {
	ScheduleCleanup() (string, error)
}
