package models

// InventoryItem is a sellable product as the gateway reports it.
type InventoryItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	Stock         int     `json:"stock"`
	LowStockAlert int     `json:"low_stock_alert"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Staff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type Expense struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	CashierName string  `json:"cashier_name"`
	Date        string  `json:"date,omitempty"`
}
