package entities

import (
	"encoding/json"
	"time"
)

// Highlight is an annotation made in the viewer. CFI fields are opaque
// position references produced by the rendering engine.
type Highlight struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	BookID uint `gorm:"uniqueIndex:idx_highlights_book_key" json:"-"`

	Key          string `gorm:"uniqueIndex:idx_highlights_book_key;size:64" json:"key"`
	AccessTime   string `gorm:"size:64" json:"accessTime"`
	CreateTime   string `gorm:"index;size:64" json:"createTime"`
	Color        string `gorm:"size:16" json:"color"`
	ParagraphCFI string `gorm:"size:1024" json:"paragraphCfi"`
	CFIRange     string `gorm:"size:1024" json:"cfiRange"`
	ChapterName  string `gorm:"size:512" json:"chapterName"`
	PageNum      int    `gorm:"index" json:"pageNum"`
	Content      string `gorm:"type:text" json:"content"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UnmarshalJSON also accepts the misspelled "chpaterName" field written by
// older viewer builds.
func (h *Highlight) UnmarshalJSON(data []byte) error {
	type plain Highlight
	aux := struct {
		*plain
		LegacyChapterName string `json:"chpaterName"`
	}{plain: (*plain)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if h.ChapterName == "" {
		h.ChapterName = aux.LegacyChapterName
	}
	return nil
}

// Slim returns the part of the highlight the annotation layer needs to draw it.
func (h Highlight) Slim() HighlightSlim {
	return HighlightSlim{CfiRange: h.CFIRange, Color: h.Color}
}

type HighlightSlim struct {
	CfiRange string `json:"CfiRange"`
	Color    string `json:"Color"`
}

// Color is a named entry of the highlight palette.
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
