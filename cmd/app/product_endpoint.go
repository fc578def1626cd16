package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

type productRequest struct {
	Name         string  `json:"name"`
	Vendor       string  `json:"vendor"`
	Price        float64 `json:"price"`
	InStock      int     `json:"instock"`
	Category     string  `json:"category"`
	CustomerType string  `json:"customertype"`
}

type stockRequest struct {
	Amount int `json:"amount"`
}

func (r *productRequest) toModel() *model.Product {
	return &model.Product{
		Name:         r.Name,
		Vendor:       r.Vendor,
		Price:        r.Price,
		InStock:      r.InStock,
		Category:     r.Category,
		CustomerType: r.CustomerType,
	}
}

func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	p := g.Group("/products")

	// LIST / SEARCH (public)
	p.GET("", func(c echo.Context) error {
		ctx := c.Request().Context()
		if name := c.QueryParam("name"); name != "" {
			products, err := ps.SearchByName(ctx, name)
			if err != nil {
				return jsonError(c, err)
			}
			return c.JSON(http.StatusOK, products)
		}
		if category := c.QueryParam("category"); category != "" {
			products, err := ps.ListByCategory(ctx, category)
			if err != nil {
				return jsonError(c, err)
			}
			return c.JSON(http.StatusOK, products)
		}
		products, err := ps.List(ctx)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, products)
	})

	// PROMOTED products (public, cached)
	p.GET("/promoted", func(c echo.Context) error {
		products, err := ps.Promoted(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, products)
	})

	p.GET("/promoted/count", func(c echo.Context) error {
		count, err := ps.CountPromoted(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]int64{"count": count})
	})

	// GET one (public)
	p.GET("/:id", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		product, err := ps.Get(c.Request().Context(), productID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	auth := p.Group("")
	auth.Use(middleware.JWTMiddleware())

	// CREATE (admin only)
	auth.POST("", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		created, err := ps.Create(c.Request().Context(), req.toModel())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, created)
	}, middleware.AdminOnly)

	// UPDATE (admin, or the premium customer who listed it)
	auth.PUT("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product := req.toModel()
		product.ProductID = productID
		updated, err := ps.Update(c.Request().Context(), claims.CustomerID, product)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	})

	// DELETE (admin, or the premium customer who listed it)
	auth.DELETE("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := ps.Delete(c.Request().Context(), claims.CustomerID, productID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
	})

	// STOCK management (admin only)
	auth.POST("/:id/stock/add", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(stockRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product, err := ps.AddToStock(c.Request().Context(), productID, req.Amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}, middleware.AdminOnly)

	auth.POST("/:id/stock/remove", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		req := new(stockRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product, err := ps.RemoveFromStock(c.Request().Context(), productID, req.Amount)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}, middleware.AdminOnly)

	// PROMOTION toggle (admin only)
	auth.POST("/:id/promotion", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		on := c.QueryParam("on") != "false"
		product, err := ps.SetPromotion(c.Request().Context(), productID, on)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	}, middleware.AdminOnly)
}
