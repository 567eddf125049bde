package routes

import (
	"github.com/gin-gonic/gin"

	"moonlandpos/controllers"
	"moonlandpos/middleware"
	"moonlandpos/session"
	"moonlandpos/store"
)

func InitializeRoutes(router *gin.Engine, st *store.Store, provider *session.Provider) {
	pc := controllers.NewPOSController(st)

	pos := router.Group("/pos")
	pos.Use(middleware.SessionMiddleware(provider, st))
	{
		pos.GET("/state", pc.GetState)
		pos.POST("/logout", pc.Logout)

		pos.GET("/cart", pc.GetCart)
		pos.POST("/cart", pc.AddToCart)
		pos.PUT("/cart/:id", pc.UpdateCartQuantity)
		pos.DELETE("/cart/:id", pc.RemoveFromCart)
		pos.DELETE("/cart", pc.ClearCart)

		pos.GET("/sales", pc.GetSales)
		pos.POST("/sales", pc.ProcessSale)
		pos.PUT("/sales/:id/pay", pc.PayCreditSale)

		pos.GET("/inventory", pc.GetInventory)
		pos.POST("/inventory", pc.AddInventoryItem)
		pos.PUT("/inventory/:id", pc.UpdateInventoryItem)
		pos.DELETE("/inventory/:id", pc.DeleteInventoryItem)
		pos.GET("/inventory/lowstock", pc.GetLowStockItems)
		pos.POST("/inventory/refresh", pc.RefreshInventory)

		pos.GET("/categories", pc.GetCategories)
		pos.POST("/categories", pc.AddCategory)
		pos.PUT("/categories/:id", pc.UpdateCategory)
		pos.DELETE("/categories/:id", pc.DeleteCategory)

		pos.GET("/expenses", pc.GetExpenses)
		pos.POST("/expenses", pc.AddExpense)

		pos.GET("/staff", pc.GetStaff)

		pos.GET("/shift", pc.GetShift)
		pos.POST("/shift", pc.StartShift)
		pos.DELETE("/shift", pc.EndShift)
	}
}
