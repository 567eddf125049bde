package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"moonlandpos/models"
	"moonlandpos/storage"
)

func newTestStore(gw Gateway) *Store {
	return New(gw, storage.NewMemoryShiftStore(), silentNotifier{})
}

func TestAddToCartMergesLines(t *testing.T) {
	st := newTestStore(&mockGateway{})
	item := models.InventoryItem{ID: "1", Name: "Coffee", Price: 10, CostPrice: 4, Stock: 5}

	st.AddToCart(item)
	st.AddToCart(item)

	cart := st.Cart()
	if len(cart) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", cart[0].Quantity)
	}
}

func TestUpdateCartQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantLen  int
		wantQty  int
	}{
		{"positive quantity sets", 5, 1, 5},
		{"zero removes line", 0, 0, 0},
		{"negative removes line", -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(&mockGateway{})
			st.AddToCart(models.InventoryItem{ID: "1", Name: "Tea", Price: 3})

			st.UpdateCartQuantity("1", tt.quantity)

			cart := st.Cart()
			if len(cart) != tt.wantLen {
				t.Fatalf("expected %d lines, got %d", tt.wantLen, len(cart))
			}
			if tt.wantLen > 0 && cart[0].Quantity != tt.wantQty {
				t.Errorf("expected quantity %d, got %d", tt.wantQty, cart[0].Quantity)
			}
		})
	}
}

func TestRemoveFromCart(t *testing.T) {
	st := newTestStore(&mockGateway{})
	st.AddToCart(models.InventoryItem{ID: "1", Name: "Tea"})
	st.AddToCart(models.InventoryItem{ID: "2", Name: "Coffee"})

	st.RemoveFromCart("1")

	cart := st.Cart()
	if len(cart) != 1 || cart[0].ID != "2" {
		t.Fatalf("expected only item 2 left, got %+v", cart)
	}
}

func TestHandleSessionLoginLoadsData(t *testing.T) {
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			return []models.InventoryItem{{ID: "1", Name: "Coffee"}}, nil
		},
		getCategoriesFn: func(context.Context) ([]models.Category, error) {
			return []models.Category{{ID: "c1", Name: "Drinks"}}, nil
		},
	}
	st := newTestStore(gw)

	st.HandleSession(context.Background(), "user-1")

	if got := len(st.Inventory()); got != 1 {
		t.Errorf("expected 1 inventory item, got %d", got)
	}
	if got := len(st.Categories()); got != 1 {
		t.Errorf("expected 1 category, got %d", got)
	}
	if st.Loading() {
		t.Error("loading should be false after the initial fetch")
	}
}

func TestHandleSessionSameUserNoRefetch(t *testing.T) {
	calls := 0
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			calls++
			return nil, nil
		},
	}
	st := newTestStore(gw)

	st.HandleSession(context.Background(), "user-1")
	st.HandleSession(context.Background(), "user-1")

	if calls != 1 {
		t.Errorf("expected 1 inventory fetch, got %d", calls)
	}
}

func TestHandleSessionLogoutClearsState(t *testing.T) {
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			return []models.InventoryItem{{ID: "1"}}, nil
		},
	}
	st := newTestStore(gw)

	st.HandleSession(context.Background(), "user-1")
	st.HandleSession(context.Background(), "")

	if got := len(st.Inventory()); got != 0 {
		t.Errorf("expected empty inventory after logout, got %d items", got)
	}
}

func TestHandleSessionLogoutDuringLoadDiscardsResults(t *testing.T) {
	fetchStarted := make(chan struct{})
	release := make(chan struct{})
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			close(fetchStarted)
			<-release
			return []models.InventoryItem{{ID: "1", Name: "Coffee"}}, nil
		},
	}
	st := newTestStore(gw)

	done := make(chan struct{})
	go func() {
		st.HandleSession(context.Background(), "user-1")
		close(done)
	}()

	<-fetchStarted
	st.HandleSession(context.Background(), "")
	close(release)
	<-done

	if got := len(st.Inventory()); got != 0 {
		t.Errorf("logged-out store must stay empty, got %d inventory items", got)
	}
	if st.Loading() {
		t.Error("loading must be false after logout")
	}
}

func TestHandleSessionReloginSupersedesStaleLoad(t *testing.T) {
	firstFetch := make(chan struct{})
	release := make(chan struct{})
	var fetches int32
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			n := atomic.AddInt32(&fetches, 1)
			if n == 1 {
				close(firstFetch)
				<-release
				return []models.InventoryItem{{ID: "stale", Name: "Old"}}, nil
			}
			return []models.InventoryItem{{ID: "fresh", Name: "New"}}, nil
		},
	}
	st := newTestStore(gw)

	done := make(chan struct{})
	go func() {
		st.HandleSession(context.Background(), "user-1")
		close(done)
	}()

	<-firstFetch
	st.HandleSession(context.Background(), "")
	st.HandleSession(context.Background(), "user-2")
	close(release)
	<-done

	inv := st.Inventory()
	if len(inv) != 1 || inv[0].ID != "fresh" {
		t.Errorf("expected user-2's fetch to win, got %+v", inv)
	}
}

func TestLowStockItemsBoundary(t *testing.T) {
	gw := &mockGateway{
		getInventoryFn: func(context.Context) ([]models.InventoryItem, error) {
			return []models.InventoryItem{
				{ID: "1", Name: "At threshold", Stock: 5, LowStockAlert: 5},
				{ID: "2", Name: "Below", Stock: 1, LowStockAlert: 5},
				{ID: "3", Name: "Above", Stock: 6, LowStockAlert: 5},
			}, nil
		},
	}
	st := newTestStore(gw)
	if err := st.RefreshInventory(context.Background()); err != nil {
		t.Fatalf("refresh inventory: %v", err)
	}

	low := st.LowStockItems()
	if len(low) != 2 {
		t.Fatalf("expected 2 low stock items, got %d", len(low))
	}
	for _, item := range low {
		if item.ID == "3" {
			t.Error("item above threshold should not be reported")
		}
	}
}

func TestAddExpenseStampsShiftCashier(t *testing.T) {
	var recorded models.Expense
	gw := &mockGateway{
		addExpenseFn: func(_ context.Context, e models.Expense) (models.Expense, error) {
			recorded = e
			return e, nil
		},
	}
	st := newTestStore(gw)

	if _, err := st.StartShift(context.Background(), "Alice", "100"); err != nil {
		t.Fatalf("start shift: %v", err)
	}
	if _, err := st.AddExpense(context.Background(), models.Expense{Description: "Milk", Amount: 4}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if recorded.CashierName != "Alice" {
		t.Errorf("expected cashier Alice, got %q", recorded.CashierName)
	}
}

func TestAddExpenseWithoutShiftFallsBackToAdmin(t *testing.T) {
	var recorded models.Expense
	gw := &mockGateway{
		addExpenseFn: func(_ context.Context, e models.Expense) (models.Expense, error) {
			recorded = e
			return e, nil
		},
	}
	st := newTestStore(gw)

	if _, err := st.AddExpense(context.Background(), models.Expense{Description: "Rent", Amount: 500}); err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if recorded.CashierName != "Admin" {
		t.Errorf("expected cashier Admin, got %q", recorded.CashierName)
	}
}

func TestAddCategoryReloadsList(t *testing.T) {
	reloaded := []models.Category{
		{ID: "c1", Name: "Drinks"},
		{ID: "c2", Name: "Snacks"},
	}
	gw := &mockGateway{
		getCategoriesFn: func(context.Context) ([]models.Category, error) {
			return reloaded, nil
		},
	}
	st := newTestStore(gw)

	if err := st.AddCategory(context.Background(), models.Category{Name: "Snacks"}); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if got := len(st.Categories()); got != 2 {
		t.Errorf("expected the reloaded list of 2 categories, got %d", got)
	}
}

func TestAddCategoryReloadFailureKeepsAddSuccess(t *testing.T) {
	gw := &mockGateway{
		addCategoryFn: func(_ context.Context, c models.Category) (models.Category, error) {
			c.ID = "c9"
			return c, nil
		},
		getCategoriesFn: func(context.Context) ([]models.Category, error) {
			return nil, errors.New("gateway down")
		},
	}
	notifier := &captureNotifier{}
	st := New(gw, storage.NewMemoryShiftStore(), notifier)

	if err := st.AddCategory(context.Background(), models.Category{Name: "Snacks"}); err != nil {
		t.Fatalf("the add succeeded, a failed reload must not report an error: %v", err)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Category Added: Snacks" {
		t.Errorf("expected a success notification for the add, got %v", notifier.successes)
	}
	if len(notifier.failures) != 1 {
		t.Errorf("expected a distinct failure notification for the reload, got %v", notifier.failures)
	}
}

func TestAddInventoryItemFailureLeavesStateUnchanged(t *testing.T) {
	gw := &mockGateway{
		addInventoryFn: func(context.Context, models.InventoryItem) (models.InventoryItem, error) {
			return models.InventoryItem{}, errors.New("gateway down")
		},
	}
	st := newTestStore(gw)

	if _, err := st.AddInventoryItem(context.Background(), models.InventoryItem{Name: "Sugar"}); err == nil {
		t.Fatal("expected an error")
	}
	if got := len(st.Inventory()); got != 0 {
		t.Errorf("expected inventory untouched, got %d items", got)
	}
}

func TestShiftLifecycle(t *testing.T) {
	shifts := storage.NewMemoryShiftStore()
	st := New(&mockGateway{}, shifts, silentNotifier{})

	shift, err := st.StartShift(context.Background(), "Bob", "50.5")
	if err != nil {
		t.Fatalf("start shift: %v", err)
	}
	if shift.StartingCash != 50.5 {
		t.Errorf("expected starting cash 50.5, got %v", shift.StartingCash)
	}
	if shift.ID == "" {
		t.Error("shift id should be set")
	}

	// A fresh store restores the persisted shift.
	restored := New(&mockGateway{}, shifts, silentNotifier{})
	if err := restored.RestoreShift(context.Background()); err != nil {
		t.Fatalf("restore shift: %v", err)
	}
	cur := restored.CurrentShift()
	if cur == nil || cur.CashierName != "Bob" {
		t.Fatalf("expected restored shift for Bob, got %+v", cur)
	}

	if err := restored.EndShift(context.Background()); err != nil {
		t.Fatalf("end shift: %v", err)
	}
	if restored.CurrentShift() != nil {
		t.Error("shift should be nil after ending")
	}
	stored, err := shifts.Load(context.Background())
	if err != nil {
		t.Fatalf("load shift: %v", err)
	}
	if stored != nil {
		t.Error("persisted shift should be cleared after ending")
	}
}

func TestStartShiftUnparseableCashDefaultsToZero(t *testing.T) {
	st := newTestStore(&mockGateway{})

	shift, err := st.StartShift(context.Background(), "Carol", "not-a-number")
	if err != nil {
		t.Fatalf("start shift: %v", err)
	}
	if shift.StartingCash != 0 {
		t.Errorf("expected starting cash 0, got %v", shift.StartingCash)
	}
}
