package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "ecommerce-api/internal/service/customer"
	ordersvc "ecommerce-api/internal/service/order"
)

func createCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func listCustomers(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func getCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		customer, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func updateCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var in customersvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			writeBindError(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteCustomer(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
	}
}

func listCustomerOrders(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		orders, err := svc.ListByCustomer(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
