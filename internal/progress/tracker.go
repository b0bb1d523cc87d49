// Package progress keeps track of where the reader is in each book.
//
// The viewer reports a relocation on every page turn and, in scrolled flow,
// on every scroll step. Tracker absorbs those bursts in memory and writes the
// last reported location of a book once it has been quiet for a while.
package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/reader/internal/debounce"
	"github.com/mrlokans/reader/internal/entities"
)

// LocationStore persists the reading position of a book.
type LocationStore interface {
	SaveLocation(bookID uint, loc entities.Location) error
	GetLocation(bookID uint) (*entities.ReadingProgress, error)
}

type position struct {
	loc     entities.Location
	version uint64
	dirty   bool
}

type Tracker struct {
	store  LocationStore
	quiet  time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	positions map[uint]*position
	savers    map[uint]func()

	// saveMu serializes writes so an older location never lands after a newer one.
	saveMu sync.Mutex
}

// NewTracker creates a tracker saving to store after quiet has passed without
// a new relocation for the same book. A nil logger disables logging.
func NewTracker(store LocationStore, quiet time.Duration, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:     store,
		quiet:     quiet,
		logger:    logger.Named("progress"),
		positions: make(map[uint]*position),
		savers:    make(map[uint]func()),
	}
}

// Relocated records the latest location of a book and schedules it to be saved.
// It returns immediately.
func (t *Tracker) Relocated(bookID uint, loc entities.Location) {
	t.mu.Lock()
	p, ok := t.positions[bookID]
	if !ok {
		p = &position{}
		t.positions[bookID] = p
	}
	p.loc = loc
	p.version++
	p.dirty = true

	save, ok := t.savers[bookID]
	if !ok {
		save = debounce.WrapFunc(func() {
			if err := t.persist(bookID); err != nil {
				t.logger.Warn("Unable to save reading location",
					zap.Uint("book_id", bookID), zap.Error(err))
			}
		}, t.quiet, false)
		t.savers[bookID] = save
	}
	t.mu.Unlock()

	save()
}

// Current returns the most recent location of a book, whether it was already
// saved or not. Books never seen by the tracker are read from the store.
func (t *Tracker) Current(bookID uint) (entities.Location, error) {
	t.mu.Lock()
	if p, ok := t.positions[bookID]; ok {
		loc := p.loc
		t.mu.Unlock()
		return loc, nil
	}
	t.mu.Unlock()

	progress, err := t.store.GetLocation(bookID)
	if err != nil {
		return entities.Location{}, err
	}
	return progress.Location, nil
}

// Pending returns the number of books whose latest location is not saved yet.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, p := range t.positions {
		if p.dirty {
			n++
		}
	}
	return n
}

// Forget drops everything known about a book. Used once the book is deleted.
// A save already scheduled for the book finds nothing to write.
func (t *Tracker) Forget(bookID uint) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.positions, bookID)
	delete(t.savers, bookID)
}

// Flush saves every pending location right away. It stops early when ctx is
// done; books that failed stay pending for the next attempt.
func (t *Tracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	var ids []uint
	for id, p := range t.positions {
		if p.dirty {
			ids = append(ids, id)
		}
	}
	t.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	var errs []error
	saved := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := t.persist(id); err != nil {
			errs = append(errs, fmt.Errorf("book %d: %w", id, err))
			continue
		}
		saved++
	}

	t.logger.Debug("Flushed reading locations", zap.Int("saved", saved), zap.Int("failed", len(ids)-saved))
	return errors.Join(errs...)
}

func (t *Tracker) persist(bookID uint) error {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	t.mu.Lock()
	p, ok := t.positions[bookID]
	if !ok || !p.dirty {
		t.mu.Unlock()
		return nil
	}
	loc, version := p.loc, p.version
	t.mu.Unlock()

	if err := t.store.SaveLocation(bookID, loc); err != nil {
		return err
	}

	t.mu.Lock()
	if current, ok := t.positions[bookID]; ok && current.version == version {
		current.dirty = false
	}
	t.mu.Unlock()

	t.logger.Debug("Saved reading location",
		zap.Uint("book_id", bookID), zap.Int("index", loc.Index), zap.Float64("percentage", loc.Percentage))
	return nil
}
