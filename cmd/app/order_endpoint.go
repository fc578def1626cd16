package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

type cartItemRequest struct {
	ProductID int64 `json:"productid"`
	Amount    int   `json:"amount"`
}

type checkoutRequest struct {
	ShippingMethod string `json:"shippingmethod"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// GET cart (the NEW order)
	p.GET("/cart", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := os.GetCart(c.Request().Context(), claims.CustomerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item to cart
	p.POST("/cart", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(cartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.Amount == 0 {
			req.Amount = 1
		}
		info, err := os.AddItem(c.Request().Context(), claims.CustomerID, req.ProductID, req.Amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, info)
	})

	// REMOVE item from cart
	p.DELETE("/cart/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		amount, _ := strconv.Atoi(c.QueryParam("amount"))
		if amount == 0 {
			amount = 1
		}
		info, err := os.RemoveItem(c.Request().Context(), claims.CustomerID, productID, amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// CHECKOUT
	p.POST("/:id/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		info, err := os.Checkout(c.Request().Context(), claims.CustomerID, orderID, req.ShippingMethod)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// CANCEL
	p.POST("/:id/cancel", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := os.Cancel(c.Request().Context(), claims.CustomerID, orderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "order cancelled"})
	})

	// RETURN
	p.POST("/:id/return", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := os.Return(c.Request().Context(), claims.CustomerID, orderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "order returned"})
	})

	// COMMENT on a completed order
	p.POST("/:id/comment", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(commentRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := os.Comment(c.Request().Context(), claims.CustomerID, orderID, req.Comment); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "comment added"})
	})

	// GET order by id
	p.GET("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		info, err := os.GetOrder(c.Request().Context(), claims.CustomerID, orderID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// LIST own orders
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orders, err := os.ListOrders(c.Request().Context(), claims.CustomerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	})
}
