package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

type listProductRequest struct {
	Name         string  `json:"name"`
	Vendor       string  `json:"vendor"`
	Price        float64 `json:"price"`
	InStock      int     `json:"instock"`
	Category     string  `json:"category"`
	CustomerType string  `json:"customertype"`
}

func registerEmporiumRoutes(g *echo.Group, es *services.EmporiumService) {
	p := g.Group("/emporium")
	p.Use(middleware.JWTMiddleware())

	// LIST products for sale
	p.GET("/products", func(c echo.Context) error {
		products, err := es.ListProducts(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, products)
	})

	// GET a listed product
	p.GET("/products/:id", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		product, err := es.GetProduct(c.Request().Context(), productID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	// LIST a product for sale
	p.POST("/products", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(listProductRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product := &model.Product{
			Name:         req.Name,
			Vendor:       req.Vendor,
			Price:        req.Price,
			InStock:      req.InStock,
			Category:     req.Category,
			CustomerType: req.CustomerType,
		}
		created, err := es.ListProductForSale(c.Request().Context(), claims.CustomerID, product)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	})

	// ADD a listed product to the cart
	p.POST("/cart", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(cartItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.Amount == 0 {
			req.Amount = 1
		}
		info, err := es.AddToCart(c.Request().Context(), claims.CustomerID, req.ProductID, req.Amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, info)
	})

	// REMOVE a listed product from the cart
	p.DELETE("/cart/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		amount, _ := strconv.Atoi(c.QueryParam("amount"))
		if amount == 0 {
			amount = 1
		}
		info, err := es.RemoveFromCart(c.Request().Context(), claims.CustomerID, productID, amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// CHECKOUT the emporium cart
	p.POST("/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		info, err := es.Checkout(c.Request().Context(), claims.CustomerID, req.ShippingMethod)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// CANCEL
	p.POST("/orders/:id/cancel", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := es.Cancel(c.Request().Context(), claims.CustomerID, orderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "order cancelled"})
	})

	// RETURN
	p.POST("/orders/:id/return", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := es.Return(c.Request().Context(), claims.CustomerID, orderID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "order returned"})
	})
}
