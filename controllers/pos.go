package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moonlandpos/models"
	"moonlandpos/store"
)

// POSController exposes the terminal state and its operations over HTTP for
// the UI.
type POSController struct {
	store *store.Store
}

func NewPOSController(st *store.Store) *POSController {
	return &POSController{store: st}
}

// Logout drops the session's server-backed state. The middleware never
// treats a rejected request as a logout, so this is the only way the UI
// signals one.
func (pc *POSController) Logout(c *gin.Context) {
	pc.store.HandleSession(c.Request.Context(), "")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetState returns the full terminal snapshot the UI renders from.
func (pc *POSController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"inventory":      pc.store.Inventory(),
		"sales":          pc.store.Sales(),
		"expenses":       pc.store.Expenses(),
		"staff":          pc.store.Staff(),
		"categories":     pc.store.Categories(),
		"cart":           pc.store.Cart(),
		"currentShift":   pc.store.CurrentShift(),
		"loading":        pc.store.Loading(),
		"inventoryDirty": pc.store.InventoryDirty(),
	})
}

func (pc *POSController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Cart())
}

func (pc *POSController) AddToCart(c *gin.Context) {
	var body struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item id is required"})
		return
	}

	for _, item := range pc.store.Inventory() {
		if item.ID == body.ID {
			pc.store.AddToCart(item)
			c.JSON(http.StatusOK, pc.store.Cart())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
}

func (pc *POSController) UpdateCartQuantity(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	pc.store.UpdateCartQuantity(c.Param("id"), body.Quantity)
	c.JSON(http.StatusOK, pc.store.Cart())
}

func (pc *POSController) RemoveFromCart(c *gin.Context) {
	pc.store.RemoveFromCart(c.Param("id"))
	c.JSON(http.StatusOK, pc.store.Cart())
}

func (pc *POSController) ClearCart(c *gin.Context) {
	pc.store.ClearCart()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// ProcessSale checks out the current cart.
func (pc *POSController) ProcessSale(c *gin.Context) {
	var payment models.PaymentInfo
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := pc.store.ProcessSale(c.Request.Context(), payment)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to process sale"})
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (pc *POSController) PayCreditSale(c *gin.Context) {
	sale, err := pc.store.PayCreditSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to settle credit sale"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (pc *POSController) GetSales(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Sales())
}

func (pc *POSController) GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Inventory())
}

func (pc *POSController) AddInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := pc.store.AddInventoryItem(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (pc *POSController) UpdateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := pc.store.UpdateInventoryItem(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *POSController) DeleteInventoryItem(c *gin.Context) {
	if err := pc.store.DeleteInventoryItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (pc *POSController) GetLowStockItems(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.LowStockItems())
}

// RefreshInventory forces a re-fetch from the gateway, clearing any drift a
// failed stock update left behind.
func (pc *POSController) RefreshInventory(c *gin.Context) {
	if err := pc.store.RefreshInventory(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh inventory"})
		return
	}
	c.JSON(http.StatusOK, pc.store.Inventory())
}

func (pc *POSController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Categories())
}

func (pc *POSController) AddCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := pc.store.AddCategory(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to add category"})
		return
	}
	c.JSON(http.StatusCreated, pc.store.Categories())
}

func (pc *POSController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := pc.store.UpdateCategory(c.Request.Context(), c.Param("id"), category); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, pc.store.Categories())
}

func (pc *POSController) DeleteCategory(c *gin.Context) {
	if err := pc.store.RemoveCategory(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (pc *POSController) GetExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Expenses())
}

func (pc *POSController) AddExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := pc.store.AddExpense(c.Request.Context(), expense)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to add expense"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (pc *POSController) GetStaff(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Staff())
}

func (pc *POSController) GetShift(c *gin.Context) {
	shift := pc.store.CurrentShift()
	if shift == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open shift"})
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (pc *POSController) StartShift(c *gin.Context) {
	var body struct {
		CashierName  string `json:"cashierName" binding:"required"`
		StartingCash string `json:"startingCash"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cashier name is required"})
		return
	}
	shift, err := pc.store.StartShift(c.Request.Context(), body.CashierName, body.StartingCash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start shift"})
		return
	}
	c.JSON(http.StatusCreated, shift)
}

func (pc *POSController) EndShift(c *gin.Context) {
	if err := pc.store.EndShift(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end shift"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift ended"})
}
