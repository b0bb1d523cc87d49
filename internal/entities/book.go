package entities

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// BookInfo is the metadata the viewer reads from an EPUB package document.
type BookInfo struct {
	CoverURL      string `gorm:"size:2048" json:"coverURL"`
	Title         string `gorm:"index;size:512" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	PublishedDate string `gorm:"size:64" json:"published_date"`
	ModifiedDate  string `gorm:"size:64" json:"modified_date"`
	Author        string `gorm:"index;size:256" json:"author"`
	Publisher     string `gorm:"size:256" json:"publisher"`
	Language      string `gorm:"size:32" json:"language"`
}

type Book struct {
	ID uint `gorm:"primaryKey" json:"id"`
	BookInfo

	Highlights []Highlight      `gorm:"foreignKey:BookID" json:"-"`
	Progress   *ReadingProgress `gorm:"foreignKey:BookID" json:"-"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type BookStyle struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	Background string  `json:"background"`
	Foreground string  `json:"foreground"`
	// AdditionalStyle holds extra rules keyed by selector, then by property.
	AdditionalStyle map[string]map[string]string `json:"additionalStyle,omitempty"`
}

func (s BookStyle) Validate() error {
	if s.FontSize <= 0 {
		return fmt.Errorf("fontSize must be positive, got %v", s.FontSize)
	}
	if s.LineHeight <= 0 {
		return fmt.Errorf("lineHeight must be positive, got %v", s.LineHeight)
	}
	return nil
}

type BookFlow string

const (
	BookFlowPaginated BookFlow = "paginated"
	BookFlowScrolled  BookFlow = "scrolled-doc"
)

func (f BookFlow) Valid() bool {
	return f == BookFlowPaginated || f == BookFlowScrolled
}

type Spread string

const (
	SpreadAuto Spread = "auto"
	SpreadNone Spread = "none"
)

func (s Spread) Valid() bool {
	return s == SpreadAuto || s == SpreadNone
}

type ScrollBehavior string

const (
	ScrollBehaviorSmooth ScrollBehavior = "smooth"
	ScrollBehaviorAuto   ScrollBehavior = "auto"
)

func (b ScrollBehavior) Valid() bool {
	return b == ScrollBehaviorSmooth || b == ScrollBehaviorAuto
}

// BookOption configures how the rendering engine lays a book out.
type BookOption struct {
	Flow                      BookFlow       `json:"flow"`
	ResizeOnOrientationChange bool           `json:"resizeOnOrientationChange"`
	Spread                    Spread         `json:"spread"`
	MinSpreadWidth            int            `json:"minSpreadWidth"`
	ScrollBehavior            ScrollBehavior `json:"scrollBehavior"`
}

func (o BookOption) Validate() error {
	if !o.Flow.Valid() {
		return fmt.Errorf("unknown flow %q", o.Flow)
	}
	if !o.Spread.Valid() {
		return fmt.Errorf("unknown spread %q", o.Spread)
	}
	if !o.ScrollBehavior.Valid() {
		return fmt.Errorf("unknown scrollBehavior %q", o.ScrollBehavior)
	}
	if o.MinSpreadWidth < 0 {
		return fmt.Errorf("minSpreadWidth must not be negative, got %d", o.MinSpreadWidth)
	}
	return nil
}
