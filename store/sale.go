package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"moonlandpos/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// StockDelta is the post-sale stock level a sale implies for one item.
type StockDelta struct {
	ItemID   string
	NewStock int
}

// BuildSale turns the cart into a sale document plus the stock updates it
// implies. Pure: no I/O and no store mutation, so checkout math is testable
// in isolation.
//
// A credit sale starts unpaid, everything else is paid immediately. An item
// missing from inventory still gets a delta so the discrepancy surfaces on
// the gateway side instead of silently vanishing.
func BuildSale(cart []models.CartLine, inventory []models.InventoryItem, payment models.PaymentInfo, cashierName string, now time.Time) (models.Sale, []StockDelta) {
	var total, totalCost float64
	items := make([]models.SaleItem, 0, len(cart))
	deltas := make([]StockDelta, 0, len(cart))

	stock := make(map[string]int, len(inventory))
	for _, item := range inventory {
		stock[item.ID] = item.Stock
	}

	for _, line := range cart {
		total += line.Price * float64(line.Quantity)
		totalCost += line.CostPrice * float64(line.Quantity)
		items = append(items, models.SaleItem{
			ID:       line.ID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
		deltas = append(deltas, StockDelta{
			ItemID:   line.ID,
			NewStock: stock[line.ID] - line.Quantity,
		})
	}

	status := "paid"
	if payment.PaymentMethod == "credit" {
		status = "unpaid"
	}
	if cashierName == "" {
		cashierName = "Unknown"
	}

	sale := models.Sale{
		ReceiptNumber: fmt.Sprintf("RCP-%d-%03d", now.UnixMilli(), rand.Intn(1000)),
		Items:         items,
		Total:         total,
		TotalCost:     totalCost,
		Profit:        total - totalCost,
		PaymentMethod: payment.PaymentMethod,
		CustomerInfo:  payment.CustomerInfo,
		Status:        status,
		CashierName:   cashierName,
		Timestamp:     now.Format(time.RFC3339),
	}
	return sale, deltas
}

// ProcessSale checks out the cart: records the sale at the gateway, pushes
// the implied stock levels, then applies everything locally and clears the
// cart. A failed sale leaves all state untouched. Failed stock pushes do
// not fail the sale; they mark the inventory dirty so the reconciliation
// job re-fetches it.
func (s *Store) ProcessSale(ctx context.Context, payment models.PaymentInfo) (*models.Sale, error) {
	s.mu.RLock()
	cart := make([]models.CartLine, len(s.cart))
	copy(cart, s.cart)
	inventory := make([]models.InventoryItem, len(s.inventory))
	copy(inventory, s.inventory)
	cashier := ""
	if s.currentShift != nil {
		cashier = s.currentShift.CashierName
	}
	s.mu.RUnlock()

	if len(cart) == 0 {
		s.notifier.Failure("Error", "Cart is empty")
		return nil, ErrEmptyCart
	}

	sale, deltas := BuildSale(cart, inventory, payment, cashier, time.Now())

	record, err := s.gateway.AddSale(ctx, sale)
	if err != nil {
		s.notifier.Failure("Sale Failed", err.Error())
		return nil, fmt.Errorf("add sale: %w", err)
	}
	created := normalizeSale(record)

	var wg sync.WaitGroup
	var stockFailed bool
	var failMu sync.Mutex
	for _, delta := range deltas {
		wg.Add(1)
		go func(d StockDelta) {
			defer wg.Done()
			if err := s.gateway.UpdateStock(ctx, d.ItemID, d.NewStock); err != nil {
				log.Printf("update stock %s: %v", d.ItemID, err)
				failMu.Lock()
				stockFailed = true
				failMu.Unlock()
			}
		}(delta)
	}
	wg.Wait()

	s.mu.Lock()
	s.sales = append(s.sales, created)
	for _, d := range deltas {
		for i := range s.inventory {
			if s.inventory[i].ID == d.ItemID {
				s.inventory[i].Stock = d.NewStock
				break
			}
		}
	}
	if stockFailed {
		s.inventoryDirty = true
	}
	s.cart = nil
	s.mu.Unlock()

	if stockFailed {
		s.notifier.Failure("Stock Update Failed", "Inventory will be re-synced")
	}
	s.notifier.Success("Sale Completed", "Receipt #"+created.ReceiptNumber)
	return &created, nil
}

// PayCreditSale settles an unpaid credit sale through the gateway and
// replaces the local copy with the gateway's updated record.
func (s *Store) PayCreditSale(ctx context.Context, saleID string) (*models.Sale, error) {
	record, err := s.gateway.PayCreditSale(ctx, saleID)
	if err != nil {
		s.notifier.Failure("Error", err.Error())
		return nil, fmt.Errorf("pay credit sale: %w", err)
	}
	updated := normalizeSale(record)

	s.mu.Lock()
	for i := range s.sales {
		if s.sales[i].ID == saleID {
			s.sales[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success("Credit Sale Paid", "Receipt #"+updated.ReceiptNumber)
	return &updated, nil
}
