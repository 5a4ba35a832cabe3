package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "ecommerce-api/internal/service/order"
)

func createOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		ordersCreatedTotal.Inc()
		c.JSON(http.StatusCreated, created)
	}
}

func getOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func deleteOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

func listOrderProducts(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		products, err := svc.Products(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func addOrderProduct(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := idParam(c, "id")
		if !ok {
			return
		}
		productID, ok := idParam(c, "productID")
		if !ok {
			return
		}
		order, err := svc.AddProduct(c.Request.Context(), orderID, productID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func removeOrderProduct(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := idParam(c, "id")
		if !ok {
			return
		}
		productID, ok := idParam(c, "productID")
		if !ok {
			return
		}
		if err := svc.RemoveProduct(c.Request.Context(), orderID, productID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product removed from order"})
	}
}
