package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())
	router.Use(metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	customers := router.Group("/customers")
	{
		customers.POST("", createCustomer(deps.CustomerSvc))
		customers.GET("", listCustomers(deps.CustomerSvc))
		customers.GET("/:id", getCustomer(deps.CustomerSvc))
		customers.PUT("/:id", updateCustomer(deps.CustomerSvc))
		customers.DELETE("/:id", deleteCustomer(deps.CustomerSvc))
		customers.GET("/:id/orders", listCustomerOrders(deps.OrderSvc))
	}

	products := router.Group("/products")
	{
		products.POST("", createProduct(deps.ProductSvc))
		products.GET("", listProducts(deps.ProductSvc))
		products.GET("/:id", getProduct(deps.ProductSvc))
		products.PUT("/:id", updateProduct(deps.ProductSvc))
		products.DELETE("/:id", deleteProduct(deps.ProductSvc))
	}

	orders := router.Group("/orders")
	{
		orders.POST("", createOrder(deps.OrderSvc))
		orders.GET("/:id", getOrder(deps.OrderSvc))
		orders.DELETE("/:id", deleteOrder(deps.OrderSvc))
		orders.GET("/:id/products", listOrderProducts(deps.OrderSvc))
		orders.POST("/:id/products/:productID", addOrderProduct(deps.OrderSvc))
		orders.DELETE("/:id/products/:productID", removeOrderProduct(deps.OrderSvc))
	}

	return router
}
