package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a session's cart. Name, price and image are a
// snapshot of the product taken when the line was created.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"product_name"`
	Price     float64   `json:"price" db:"product_price"`
	ImageURL  *string   `json:"image_url" db:"product_image_url"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Size      string    `json:"size" db:"size"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subtotal returns price times quantity for the line
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// SameVariant reports whether the line holds the given product variant
func (i CartItem) SameVariant(productID uuid.UUID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// WishlistEntry marks a product as saved by a session
type WishlistEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SessionID uuid.UUID `json:"session_id" db:"session_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
