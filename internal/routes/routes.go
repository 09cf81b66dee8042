package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thecae/wilpower/internal/config"
	"github.com/thecae/wilpower/internal/handlers"
	"github.com/thecae/wilpower/internal/middleware"
	"github.com/thecae/wilpower/internal/payment"
	"github.com/thecae/wilpower/internal/repository"
	"github.com/thecae/wilpower/internal/tax"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, rdb *redis.Client, cfg *config.Config) {
	itemRepo := repository.NewItemRepository(db.Collection("store"))
	saleRepo := repository.NewSaleRepository(db.Collection("sales"))

	store := handlers.NewStoreHandler(itemRepo)
	checkout := handlers.NewCheckoutHandler(
		payment.NewClient(cfg.SquareAccessToken, cfg.SquareEnvironment),
		tax.NewClient(cfg.SalesTaxAPIKey),
		itemRepo,
		saleRepo,
	)
	sales := handlers.NewSaleHandler(saleRepo)

	api := router.Group("/api")
	api.Use(middleware.CORS())
	{
		api.GET("/store", store.ListItems)
		api.POST("/store", store.CreateItem)
		api.PUT("/store", store.UpdateItem)
		api.DELETE("/store", store.DeleteItem)

		api.GET("/store/:item", store.GetItemByInv)
		api.PUT("/store/:item", store.UpdateItemByInv)
		api.DELETE("/store/:item", store.DeleteItemByName)

		api.POST("/store/cart", checkout.ComputeCart)
		api.POST("/store/checkout", middleware.RateLimiter(rdb), checkout.Checkout)

		api.GET("/sales", sales.ListSales)
		api.PATCH("/sales/:id", sales.ArchiveSale)
	}
}
