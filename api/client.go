package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"moonlandpos/models"
)

// Client talks to the remote POS gateway. Every operation is a single
// request/response call; retries and timeouts beyond the 10s cap are the
// gateway's problem, not ours.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request send error: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway error %d: %s", resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetSales(ctx context.Context) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (c *Client) GetStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := c.do(ctx, http.MethodGet, "/staff", nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	var created models.InventoryItem
	if err := c.do(ctx, http.MethodPost, "/inventory", item, &created); err != nil {
		return models.InventoryItem{}, err
	}
	return created, nil
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id string, item models.InventoryItem) (models.InventoryItem, error) {
	var updated models.InventoryItem
	if err := c.do(ctx, http.MethodPut, "/inventory/"+id, item, &updated); err != nil {
		return models.InventoryItem{}, err
	}
	return updated, nil
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/inventory/"+id, nil, nil)
}

func (c *Client) AddSale(ctx context.Context, sale models.Sale) (models.SaleRecord, error) {
	var created models.SaleRecord
	if err := c.do(ctx, http.MethodPost, "/sales", sale, &created); err != nil {
		return models.SaleRecord{}, err
	}
	return created, nil
}

func (c *Client) UpdateStock(ctx context.Context, itemID string, newStock int) error {
	payload := map[string]int{"stock": newStock}
	return c.do(ctx, http.MethodPut, "/inventory/"+itemID+"/stock", payload, nil)
}

func (c *Client) PayCreditSale(ctx context.Context, saleID string) (models.SaleRecord, error) {
	var updated models.SaleRecord
	if err := c.do(ctx, http.MethodPut, "/sales/"+saleID+"/pay", nil, &updated); err != nil {
		return models.SaleRecord{}, err
	}
	return updated, nil
}

func (c *Client) AddExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	var created models.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", expense, &created); err != nil {
		return models.Expense{}, err
	}
	return created, nil
}

func (c *Client) AddCategory(ctx context.Context, category models.Category) (models.Category, error) {
	var created models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", category, &created); err != nil {
		return models.Category{}, err
	}
	return created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, category models.Category) (models.Category, error) {
	var updated models.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+id, category, &updated); err != nil {
		return models.Category{}, err
	}
	return updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
}
