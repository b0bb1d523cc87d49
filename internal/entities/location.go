package entities

import "time"

// Location is the position reported by the rendering engine after every
// relocation. Start and End are EPUB CFIs.
type Location struct {
	Index      int     `json:"index"`
	Href       string  `gorm:"size:1024" json:"href"`
	Start      string  `gorm:"size:1024" json:"start"`
	End        string  `gorm:"size:1024" json:"end"`
	Percentage float64 `json:"percentage"`
}

// ReadingProgress stores the last known Location of a book.
type ReadingProgress struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	BookID    uint      `gorm:"uniqueIndex" json:"-"`
	Location  Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
