package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of a recorded order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is one line of a checkout handed off to the messaging channel. All
// lines of one checkout share an order number.
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	SessionID    uuid.UUID   `json:"session_id" db:"session_id"`
	OrderNumber  string      `json:"order_number" db:"order_number"`
	ProductID    *uuid.UUID  `json:"product_id" db:"product_id"`
	ProductName  string      `json:"product_name" db:"product_name"`
	ProductPrice float64     `json:"product_price" db:"product_price"`
	Quantity     int         `json:"quantity" db:"quantity"`
	Size         *string     `json:"size" db:"size"`
	Color        *string     `json:"color" db:"color"`
	TotalAmount  float64     `json:"total_amount" db:"total_amount"`
	Status       OrderStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}
