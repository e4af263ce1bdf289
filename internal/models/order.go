package models

import "time"

// OrderItem is one (menu_item_id, quantity) line inside an order.
type OrderItem struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

// Order is a customer purchase. TotalPrice is computed by the service from
// the catalog at create/update time and never trusted from client input.
type Order struct {
	ID           int         `json:"id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	TotalPrice   float64     `json:"total_price"`
}

// OrderItemCandidate is an incoming order line before validation.
type OrderItemCandidate struct {
	MenuItemID *int `json:"menu_item_id"`
	Quantity   *int `json:"quantity"`
}

// OrderCandidate is the request body for order create/update. A supplied
// total_price is checked for well-formedness but its value is discarded.
type OrderCandidate struct {
	CustomerName *string              `json:"customer_name"`
	Items        []OrderItemCandidate `json:"items"`
	TotalPrice   *float64             `json:"total_price"`
}

// OrderEvent is published to the orders topic exchange after a successful
// order mutation.
type OrderEvent struct {
	Event        string    `json:"event"`
	OrderID      int       `json:"order_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	TotalPrice   float64   `json:"total_price,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Order event names, used as routing key suffixes.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)
