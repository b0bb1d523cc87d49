// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── books/           # Book and highlight CRUD operations
//	├── locations/       # Last reading position per book
//	└── settings/        # Key/value application settings
//
// # Using Sub-packages
//
// NewDatabase opens the connection and builds one Repository per domain:
//
//	db, err := database.NewDatabase("./reader.db")
//
//	book, err := db.Books.GetBookByID(123)
//	progress, err := db.Locations.GetLocation(book.ID)
//
// Missing records surface as gorm.ErrRecordNotFound; check with errors.Is.
package database
