package models

// Category is one entry of the fixed browse taxonomy (electronics, clothing,
// accessories, books, documents, keys, wallet, other). Rows are seeded at
// startup; items reference them by slug in their category field.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;unique" json:"name"`
	Slug string `gorm:"size:100;not null;unique" json:"slug"`
}
