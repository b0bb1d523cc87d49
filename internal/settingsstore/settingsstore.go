package settingsstore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
)

const (
	SourceDatabase = "database"
	SourceDefault  = "default"
)

// Priority: database > environment > built-in default
type SettingsStore struct {
	db       *database.Database
	defaults config.Defaults
}

// New creates a store. Zero fields in defaults fall back to the built-in
// reader defaults.
func New(db *database.Database, defaults config.Defaults) *SettingsStore {
	return &SettingsStore{db: db, defaults: withBuiltins(defaults)}
}

func withBuiltins(d config.Defaults) config.Defaults {
	if d.FontFamily == "" {
		d.FontFamily = "serif"
	}
	if d.FontSize <= 0 {
		d.FontSize = 16
	}
	if d.LineHeight <= 0 {
		d.LineHeight = 1.5
	}
	if d.Background == "" {
		d.Background = "#ffffff"
	}
	if d.Foreground == "" {
		d.Foreground = "#000000"
	}
	if !entities.BookFlow(d.Flow).Valid() {
		d.Flow = string(entities.BookFlowPaginated)
	}
	if !entities.Spread(d.Spread).Valid() {
		d.Spread = string(entities.SpreadAuto)
	}
	if d.MinSpreadWidth <= 0 {
		d.MinSpreadWidth = 800
	}
	if !entities.ScrollBehavior(d.ScrollBehavior).Valid() {
		d.ScrollBehavior = string(entities.ScrollBehaviorSmooth)
	}
	return d
}

// DefaultBookStyle returns the style used while nothing is stored.
func (s *SettingsStore) DefaultBookStyle() entities.BookStyle {
	return entities.BookStyle{
		FontFamily: s.defaults.FontFamily,
		FontSize:   s.defaults.FontSize,
		LineHeight: s.defaults.LineHeight,
		Background: s.defaults.Background,
		Foreground: s.defaults.Foreground,
	}
}

// DefaultBookOption returns the layout options used while nothing is stored.
func (s *SettingsStore) DefaultBookOption() entities.BookOption {
	return entities.BookOption{
		Flow:                      entities.BookFlow(s.defaults.Flow),
		ResizeOnOrientationChange: true,
		Spread:                    entities.Spread(s.defaults.Spread),
		MinSpreadWidth:            s.defaults.MinSpreadWidth,
		ScrollBehavior:            entities.ScrollBehavior(s.defaults.ScrollBehavior),
	}
}

// load decodes the stored value for key into v. It reports false when the
// key is not set.
func (s *SettingsStore) load(key string, v any) (bool, error) {
	err := s.db.Settings.GetJSON(key, v)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SettingsStore) source(key string) string {
	setting, err := s.db.Settings.GetSetting(key)
	if err == nil && setting.Value != "" {
		return SourceDatabase
	}
	return SourceDefault
}

func (s *SettingsStore) clear(key string) error {
	err := s.db.Settings.DeleteSetting(key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", key, err)
	}
	return nil
}
