package settingsstore

import (
	"fmt"

	"github.com/mrlokans/reader/internal/entities"
)

// StyleInfo is the effective book style and where it came from.
type StyleInfo struct {
	Style  entities.BookStyle `json:"style"`
	Source string             `json:"source"` // "database" or "default"
}

// OptionInfo is the effective layout options and where they came from.
type OptionInfo struct {
	Option entities.BookOption `json:"option"`
	Source string              `json:"source"` // "database" or "default"
}

// GetBookStyle returns the stored style, or the default when none is stored.
func (s *SettingsStore) GetBookStyle() (entities.BookStyle, error) {
	var style entities.BookStyle
	found, err := s.load(entities.SettingKeyBookStyle, &style)
	if err != nil {
		return entities.BookStyle{}, err
	}
	if !found {
		return s.DefaultBookStyle(), nil
	}
	return style, nil
}

func (s *SettingsStore) GetBookStyleSource() string {
	return s.source(entities.SettingKeyBookStyle)
}

func (s *SettingsStore) GetBookStyleInfo() (StyleInfo, error) {
	style, err := s.GetBookStyle()
	if err != nil {
		return StyleInfo{}, err
	}
	return StyleInfo{Style: style, Source: s.GetBookStyleSource()}, nil
}

// SetBookStyle validates and stores style.
func (s *SettingsStore) SetBookStyle(style entities.BookStyle) error {
	if err := style.Validate(); err != nil {
		return fmt.Errorf("invalid book style: %w", err)
	}
	return s.db.Settings.SetJSON(entities.SettingKeyBookStyle, style)
}

// GetBookOption returns the stored layout options, or the default when none
// are stored.
func (s *SettingsStore) GetBookOption() (entities.BookOption, error) {
	var option entities.BookOption
	found, err := s.load(entities.SettingKeyBookOption, &option)
	if err != nil {
		return entities.BookOption{}, err
	}
	if !found {
		return s.DefaultBookOption(), nil
	}
	return option, nil
}

func (s *SettingsStore) GetBookOptionSource() string {
	return s.source(entities.SettingKeyBookOption)
}

func (s *SettingsStore) GetBookOptionInfo() (OptionInfo, error) {
	option, err := s.GetBookOption()
	if err != nil {
		return OptionInfo{}, err
	}
	return OptionInfo{Option: option, Source: s.GetBookOptionSource()}, nil
}

// SetBookOption validates and stores option.
func (s *SettingsStore) SetBookOption(option entities.BookOption) error {
	if err := option.Validate(); err != nil {
		return fmt.Errorf("invalid book option: %w", err)
	}
	return s.db.Settings.SetJSON(entities.SettingKeyBookOption, option)
}

// Reset clears all stored preferences, reverting to defaults.
func (s *SettingsStore) Reset() error {
	for _, key := range []string{entities.SettingKeyBookStyle, entities.SettingKeyBookOption} {
		if err := s.clear(key); err != nil {
			return err
		}
	}
	return nil
}
