package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"moonlandpos/store"
)

// SendLowStockReport mails the daily list of items at or below their alert
// threshold. Nothing low means no mail.
func SendLowStockReport(st *store.Store) {
	low := st.LowStockItems()
	if len(low) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Items running low:\n\n")
	for _, item := range low {
		fmt.Fprintf(&b, "- %s: %d left (alert at %d)\n", item.Name, item.Stock, item.LowStockAlert)
	}

	to := os.Getenv("REPORT_EMAIL")
	if to == "" {
		log.Println("REPORT_EMAIL not set, skipping low stock report")
		return
	}
	if err := SendEmail(to, "Low stock report", b.String()); err != nil {
		log.Printf("send low stock report: %v", err)
	}
}

// ReconcileInventory re-fetches inventory when a failed stock push left the
// local copy out of sync with the gateway.
func ReconcileInventory(st *store.Store) {
	if !st.InventoryDirty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.RefreshInventory(ctx); err != nil {
		log.Printf("reconcile inventory: %v", err)
		return
	}
	log.Println("inventory reconciled with gateway")
}
