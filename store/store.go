package store

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"moonlandpos/models"
	"moonlandpos/notify"
	"moonlandpos/storage"
)

// Gateway is the remote POS backend as the store consumes it.
type Gateway interface {
	GetInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetSales(ctx context.Context) ([]models.SaleRecord, error)
	GetExpenses(ctx context.Context) ([]models.Expense, error)
	GetStaff(ctx context.Context) ([]models.Staff, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id string, item models.InventoryItem) (models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id string) error
	AddSale(ctx context.Context, sale models.Sale) (models.SaleRecord, error)
	UpdateStock(ctx context.Context, itemID string, newStock int) error
	PayCreditSale(ctx context.Context, saleID string) (models.SaleRecord, error)
	AddExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	AddCategory(ctx context.Context, category models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, id string, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Store holds the terminal's working state: the server-backed collections,
// the local cart and the current shift. All reads hand out copies so callers
// never see a slice that a later mutation rewrites under them.
type Store struct {
	mu       sync.RWMutex
	gateway  Gateway
	shifts   storage.ShiftStore
	notifier notify.Notifier

	inventory  []models.InventoryItem
	sales      []models.Sale
	expenses   []models.Expense
	staff      []models.Staff
	categories []models.Category

	cart         []models.CartLine
	currentShift *models.Shift

	loading        bool
	sessionUser    string
	sessionGen     uint64
	inventoryDirty bool
}

func New(gateway Gateway, shifts storage.ShiftStore, notifier notify.Notifier) *Store {
	return &Store{
		gateway:  gateway,
		shifts:   shifts,
		notifier: notifier,
	}
}

// RestoreShift reads the persisted shift so a terminal restart does not end
// the cashier's session. Called once at startup.
func (s *Store) RestoreShift(ctx context.Context) error {
	shift, err := s.shifts.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore shift: %w", err)
	}
	s.mu.Lock()
	s.currentShift = shift
	s.mu.Unlock()
	return nil
}

// HandleSession reacts to the authenticated user changing. A login triggers
// the initial data load, a logout drops all server-backed state. Repeated
// calls with the same user are no-ops. Every transition bumps the session
// generation; fetches started under an older generation discard their
// results, so a logout during the initial load leaves the store empty.
func (s *Store) HandleSession(ctx context.Context, userID string) {
	s.mu.Lock()
	if userID == s.sessionUser {
		s.mu.Unlock()
		return
	}
	s.sessionUser = userID
	s.sessionGen++
	gen := s.sessionGen

	if userID == "" {
		s.inventory = nil
		s.sales = nil
		s.expenses = nil
		s.staff = nil
		s.categories = nil
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.loading = true
	s.mu.Unlock()

	s.loadAll(ctx, gen)

	s.mu.Lock()
	if s.sessionGen == gen {
		s.loading = false
	}
	s.mu.Unlock()
}

// loadAll fetches the five server collections concurrently. A failed fetch
// leaves that collection empty; the others still land. Results are applied
// only while gen is still the current session generation.
func (s *Store) loadAll(ctx context.Context, gen uint64) {
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		items, err := s.gateway.GetInventory(ctx)
		if err != nil {
			log.Printf("load inventory: %v", err)
			return
		}
		s.mu.Lock()
		if s.sessionGen == gen {
			s.inventory = items
		}
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		records, err := s.gateway.GetSales(ctx)
		if err != nil {
			log.Printf("load sales: %v", err)
			return
		}
		sales := make([]models.Sale, 0, len(records))
		for _, r := range records {
			sales = append(sales, normalizeSale(r))
		}
		s.mu.Lock()
		if s.sessionGen == gen {
			s.sales = sales
		}
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		expenses, err := s.gateway.GetExpenses(ctx)
		if err != nil {
			log.Printf("load expenses: %v", err)
			return
		}
		s.mu.Lock()
		if s.sessionGen == gen {
			s.expenses = expenses
		}
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		staff, err := s.gateway.GetStaff(ctx)
		if err != nil {
			log.Printf("load staff: %v", err)
			return
		}
		s.mu.Lock()
		if s.sessionGen == gen {
			s.staff = staff
		}
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		categories, err := s.gateway.GetCategories(ctx)
		if err != nil {
			log.Printf("load categories: %v", err)
			return
		}
		s.mu.Lock()
		if s.sessionGen == gen {
			s.categories = categories
		}
		s.mu.Unlock()
	}()

	wg.Wait()
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Inventory() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InventoryItem, len(s.inventory))
	copy(out, s.inventory)
	return out
}

func (s *Store) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

func (s *Store) Staff() []models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Staff, len(s.staff))
	copy(out, s.staff)
	return out
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Cart() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

func (s *Store) CurrentShift() *models.Shift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentShift == nil {
		return nil
	}
	shift := *s.currentShift
	return &shift
}

// InventoryDirty reports whether a sale left the local inventory out of sync
// with the gateway. The reconciliation job clears it.
func (s *Store) InventoryDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventoryDirty
}

// AddToCart puts one unit of the item in the cart, merging with an existing
// line for the same item.
func (s *Store) AddToCart(item models.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == item.ID {
			s.cart[i].Quantity++
			return
		}
	}
	s.cart = append(s.cart, models.CartLine{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		CostPrice: item.CostPrice,
		Quantity:  1,
	})
}

func (s *Store) RemoveFromCart(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == itemID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// UpdateCartQuantity sets a line's quantity. Zero or negative removes the
// line.
func (s *Store) UpdateCartQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(itemID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == itemID {
			s.cart[i].Quantity = quantity
			return
		}
	}
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

func (s *Store) AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	created, err := s.gateway.AddInventoryItem(ctx, item)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return models.InventoryItem{}, fmt.Errorf("add inventory item: %w", err)
	}
	s.mu.Lock()
	s.inventory = append(s.inventory, created)
	s.mu.Unlock()
	s.notifier.Success("Item Added", created.Name+" added to inventory")
	return created, nil
}

func (s *Store) UpdateInventoryItem(ctx context.Context, id string, item models.InventoryItem) (models.InventoryItem, error) {
	updated, err := s.gateway.UpdateInventoryItem(ctx, id, item)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return models.InventoryItem{}, fmt.Errorf("update inventory item: %w", err)
	}
	s.mu.Lock()
	for i := range s.inventory {
		if s.inventory[i].ID == id {
			s.inventory[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Success("Item Updated", updated.Name+" updated")
	return updated, nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	if err := s.gateway.DeleteInventoryItem(ctx, id); err != nil {
		s.notifier.Failure("Error", err.Error())
		return fmt.Errorf("delete inventory item: %w", err)
	}
	s.mu.Lock()
	for i := range s.inventory {
		if s.inventory[i].ID == id {
			s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Success("Item Deleted", "")
	return nil
}

// RefreshInventory re-fetches inventory from the gateway and clears the
// dirty flag.
func (s *Store) RefreshInventory(ctx context.Context) error {
	items, err := s.gateway.GetInventory(ctx)
	if err != nil {
		return fmt.Errorf("refresh inventory: %w", err)
	}
	s.mu.Lock()
	s.inventory = items
	s.inventoryDirty = false
	s.mu.Unlock()
	return nil
}

// LowStockItems returns every item at or below its alert threshold.
func (s *Store) LowStockItems() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var low []models.InventoryItem
	for _, item := range s.inventory {
		if item.Stock <= item.LowStockAlert {
			low = append(low, item)
		}
	}
	return low
}

// AddCategory creates the category and then re-fetches the full list, since
// the gateway may reorder or merge duplicates. A failed reload does not undo
// the add; the local list just stays stale until the next fetch, and the
// staleness is surfaced on its own.
func (s *Store) AddCategory(ctx context.Context, category models.Category) error {
	created, err := s.gateway.AddCategory(ctx, category)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return fmt.Errorf("add category: %w", err)
	}
	s.notifier.Success("Category Added", created.Name)

	categories, err := s.gateway.GetCategories(ctx)
	if err != nil {
		log.Printf("reload categories: %v", err)
		s.notifier.Failure("Error", "Category list may be stale: "+err.Error())
		return nil
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, category models.Category) error {
	updated, err := s.gateway.UpdateCategory(ctx, id, category)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return fmt.Errorf("update category: %w", err)
	}
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i] = updated
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Success("Category Updated", updated.Name)
	return nil
}

func (s *Store) RemoveCategory(ctx context.Context, id string) error {
	if err := s.gateway.DeleteCategory(ctx, id); err != nil {
		s.notifier.Failure("Error", err.Error())
		return fmt.Errorf("delete category: %w", err)
	}
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notifier.Success("Category Deleted", "")
	return nil
}

// AddExpense records an expense stamped with the current shift's cashier,
// or "Admin" when no shift is open.
func (s *Store) AddExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	s.mu.RLock()
	cashier := "Admin"
	if s.currentShift != nil {
		cashier = s.currentShift.CashierName
	}
	s.mu.RUnlock()
	expense.CashierName = cashier

	created, err := s.gateway.AddExpense(ctx, expense)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return models.Expense{}, fmt.Errorf("add expense: %w", err)
	}
	s.mu.Lock()
	s.expenses = append(s.expenses, created)
	s.mu.Unlock()
	s.notifier.Success("Expense Added", created.Description)
	return created, nil
}

// StartShift opens a shift for the cashier. StartingCash arrives as the raw
// form value and an unparseable amount counts as zero.
func (s *Store) StartShift(ctx context.Context, cashierName, startingCash string) (*models.Shift, error) {
	cash, err := strconv.ParseFloat(startingCash, 64)
	if err != nil {
		cash = 0
	}
	shift := models.Shift{
		ID:           uuid.NewString(),
		CashierName:  cashierName,
		StartTime:    time.Now(),
		StartingCash: cash,
	}
	if err := s.shifts.Save(ctx, shift); err != nil {
		return nil, fmt.Errorf("save shift: %w", err)
	}
	s.mu.Lock()
	s.currentShift = &shift
	s.mu.Unlock()
	s.notifier.Success("Shift Started", fmt.Sprintf("Welcome %s!", cashierName))
	return &shift, nil
}

func (s *Store) EndShift(ctx context.Context) error {
	if err := s.shifts.Clear(ctx); err != nil {
		return fmt.Errorf("clear shift: %w", err)
	}
	s.mu.Lock()
	s.currentShift = nil
	s.mu.Unlock()
	s.notifier.Success("Shift Ended", "")
	return nil
}
