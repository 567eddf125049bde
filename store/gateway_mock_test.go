package store

import (
	"context"
	"sync"

	"moonlandpos/models"
)

// mockGateway lets each test override only the calls it cares about.
// Unset methods succeed with zero values.
type mockGateway struct {
	getInventoryFn    func(ctx context.Context) ([]models.InventoryItem, error)
	getSalesFn        func(ctx context.Context) ([]models.SaleRecord, error)
	getExpensesFn     func(ctx context.Context) ([]models.Expense, error)
	getStaffFn        func(ctx context.Context) ([]models.Staff, error)
	getCategoriesFn   func(ctx context.Context) ([]models.Category, error)
	addInventoryFn    func(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	updateInventoryFn func(ctx context.Context, id string, item models.InventoryItem) (models.InventoryItem, error)
	deleteInventoryFn func(ctx context.Context, id string) error
	addSaleFn         func(ctx context.Context, sale models.Sale) (models.SaleRecord, error)
	updateStockFn     func(ctx context.Context, itemID string, newStock int) error
	payCreditSaleFn   func(ctx context.Context, saleID string) (models.SaleRecord, error)
	addExpenseFn      func(ctx context.Context, expense models.Expense) (models.Expense, error)
	addCategoryFn     func(ctx context.Context, category models.Category) (models.Category, error)
	updateCategoryFn  func(ctx context.Context, id string, category models.Category) (models.Category, error)
	deleteCategoryFn  func(ctx context.Context, id string) error
}

func (m *mockGateway) GetInventory(ctx context.Context) ([]models.InventoryItem, error) {
	if m.getInventoryFn != nil {
		return m.getInventoryFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) GetSales(ctx context.Context) ([]models.SaleRecord, error) {
	if m.getSalesFn != nil {
		return m.getSalesFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) GetExpenses(ctx context.Context) ([]models.Expense, error) {
	if m.getExpensesFn != nil {
		return m.getExpensesFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) GetStaff(ctx context.Context) ([]models.Staff, error) {
	if m.getStaffFn != nil {
		return m.getStaffFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) GetCategories(ctx context.Context) ([]models.Category, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *mockGateway) AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	if m.addInventoryFn != nil {
		return m.addInventoryFn(ctx, item)
	}
	return item, nil
}

func (m *mockGateway) UpdateInventoryItem(ctx context.Context, id string, item models.InventoryItem) (models.InventoryItem, error) {
	if m.updateInventoryFn != nil {
		return m.updateInventoryFn(ctx, id, item)
	}
	return item, nil
}

func (m *mockGateway) DeleteInventoryItem(ctx context.Context, id string) error {
	if m.deleteInventoryFn != nil {
		return m.deleteInventoryFn(ctx, id)
	}
	return nil
}

func (m *mockGateway) AddSale(ctx context.Context, sale models.Sale) (models.SaleRecord, error) {
	if m.addSaleFn != nil {
		return m.addSaleFn(ctx, sale)
	}
	return models.SaleRecord{}, nil
}

func (m *mockGateway) UpdateStock(ctx context.Context, itemID string, newStock int) error {
	if m.updateStockFn != nil {
		return m.updateStockFn(ctx, itemID, newStock)
	}
	return nil
}

func (m *mockGateway) PayCreditSale(ctx context.Context, saleID string) (models.SaleRecord, error) {
	if m.payCreditSaleFn != nil {
		return m.payCreditSaleFn(ctx, saleID)
	}
	return models.SaleRecord{}, nil
}

func (m *mockGateway) AddExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	if m.addExpenseFn != nil {
		return m.addExpenseFn(ctx, expense)
	}
	return expense, nil
}

func (m *mockGateway) AddCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if m.addCategoryFn != nil {
		return m.addCategoryFn(ctx, category)
	}
	return category, nil
}

func (m *mockGateway) UpdateCategory(ctx context.Context, id string, category models.Category) (models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, id, category)
	}
	return category, nil
}

func (m *mockGateway) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, id)
	}
	return nil
}

type silentNotifier struct{}

func (silentNotifier) Success(string, string) {}
func (silentNotifier) Failure(string, string) {}

// captureNotifier records every notification for assertions.
type captureNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *captureNotifier) Success(title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title+": "+description)
}

func (n *captureNotifier) Failure(title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, title+": "+description)
}
