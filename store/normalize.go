package store

import (
	"encoding/json"
	"strconv"

	"moonlandpos/models"
)

// normalizeSale converts a raw gateway sale into the canonical form. Older
// gateway versions return numbers as strings and items/customer_info as
// JSON encoded text; anything unparseable falls back to the zero value so
// one bad record never breaks the sales list.
func normalizeSale(r models.SaleRecord) models.Sale {
	receipt := coerceString(r.ReceiptNumber)
	if receipt == "" {
		receipt = coerceString(r.ReceiptNumberAlt)
	}
	timestamp := coerceString(r.CreatedAt)
	if timestamp == "" {
		timestamp = coerceString(r.Timestamp)
	}
	return models.Sale{
		ID:            coerceString(r.ID),
		ReceiptNumber: receipt,
		Items:         decodeSaleItems(r.Items),
		Total:         coerceFloat(r.Total),
		TotalCost:     coerceFloat(r.TotalCost),
		Profit:        coerceFloat(r.Profit),
		PaymentMethod: coerceString(r.PaymentMethod),
		CustomerInfo:  decodeCustomerInfo(r.CustomerInfo),
		Status:        coerceString(r.Status),
		CashierName:   coerceString(r.CashierName),
		Timestamp:     timestamp,
	}
}

// coerceFloat reads a JSON number or a quoted numeric string, 0 otherwise.
func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// coerceString reads a JSON string or renders a JSON number as its decimal
// text, "" otherwise.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

type rawSaleItem struct {
	ID       json.RawMessage `json:"id"`
	Name     json.RawMessage `json:"name"`
	Quantity json.RawMessage `json:"quantity"`
	Price    json.RawMessage `json:"price"`
}

// decodeSaleItems accepts either a JSON array or a string containing one.
// Malformed input yields an empty slice.
func decodeSaleItems(raw json.RawMessage) []models.SaleItem {
	if len(raw) == 0 {
		return []models.SaleItem{}
	}
	data := []byte(raw)
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		data = []byte(encoded)
	}
	var rawItems []rawSaleItem
	if err := json.Unmarshal(data, &rawItems); err != nil {
		return []models.SaleItem{}
	}
	items := make([]models.SaleItem, 0, len(rawItems))
	for _, ri := range rawItems {
		items = append(items, models.SaleItem{
			ID:       coerceString(ri.ID),
			Name:     coerceString(ri.Name),
			Quantity: int(coerceFloat(ri.Quantity)),
			Price:    coerceFloat(ri.Price),
		})
	}
	return items
}

// decodeCustomerInfo accepts either a JSON object or a string containing
// one. Malformed input yields an empty map.
func decodeCustomerInfo(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	data := []byte(raw)
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		data = []byte(encoded)
	}
	var info map[string]any
	if err := json.Unmarshal(data, &info); err != nil || info == nil {
		return map[string]any{}
	}
	return info
}
