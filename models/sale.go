package models

import (
	"encoding/json"
	"time"
)

// CartLine is one item in the checkout cart. It carries a copy of the
// pricing fields so a later inventory edit does not change an open cart.
type CartLine struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CostPrice float64 `json:"cost_price"`
	Quantity  int     `json:"quantity"`
}

type SaleItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Sale is the normalized client-side view of a recorded sale.
// Status is "paid" or "unpaid"; an unpaid (credit) sale may later be
// settled through the gateway.
type Sale struct {
	ID            string         `json:"id,omitempty"`
	ReceiptNumber string         `json:"receipt_number"`
	Items         []SaleItem     `json:"items"`
	Total         float64        `json:"total"`
	TotalCost     float64        `json:"total_cost"`
	Profit        float64        `json:"profit"`
	PaymentMethod string         `json:"payment_method"`
	CustomerInfo  map[string]any `json:"customer_info,omitempty"`
	Status        string         `json:"status"`
	CashierName   string         `json:"cashier_name"`
	Timestamp     string         `json:"timestamp,omitempty"`
}

// SaleRecord is a sale as the gateway actually delivers it. Older backends
// return monetary fields as strings and items/customer_info as JSON encoded
// text, so every field stays raw until normalization.
type SaleRecord struct {
	ID               json.RawMessage `json:"id"`
	ReceiptNumber    json.RawMessage `json:"receipt_number"`
	ReceiptNumberAlt json.RawMessage `json:"receiptNumber"`
	Items            json.RawMessage `json:"items"`
	Total            json.RawMessage `json:"total"`
	TotalCost        json.RawMessage `json:"total_cost"`
	Profit           json.RawMessage `json:"profit"`
	PaymentMethod    json.RawMessage `json:"payment_method"`
	CustomerInfo     json.RawMessage `json:"customer_info"`
	Status           json.RawMessage `json:"status"`
	CashierName      json.RawMessage `json:"cashier_name"`
	CreatedAt        json.RawMessage `json:"created_at"`
	Timestamp        json.RawMessage `json:"timestamp"`
}

// PaymentInfo is what the checkout screen submits.
type PaymentInfo struct {
	PaymentMethod string         `json:"paymentMethod"`
	CustomerInfo  map[string]any `json:"customerInfo,omitempty"`
}

// Shift is a cashier working session. It is a purely local concept and is
// persisted only in the terminal's durable storage so it survives reloads.
type Shift struct {
	ID           string    `bson:"id" json:"id"`
	CashierName  string    `bson:"cashier_name" json:"cashierName"`
	StartTime    time.Time `bson:"start_time" json:"startTime"`
	StartingCash float64   `bson:"starting_cash" json:"startingCash"`
}
