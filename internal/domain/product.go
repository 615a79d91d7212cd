package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry. Products are owned by the store and are
// read-only for the storefront.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Subcategory *string   `json:"subcategory" db:"subcategory"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Color       *string   `json:"color" db:"color"`
	Size        *string   `json:"size" db:"size"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	Featured    bool      `json:"featured" db:"featured"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Category represents a product category
type Category struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// StringValue dereferences an optional string, returning "" for nil
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for an empty string and a pointer to s otherwise
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
