package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

func registerCustomerRoutes(g *echo.Group, cs *services.CustomerService) {
	p := g.Group("/customers")
	p.Use(middleware.JWTMiddleware())

	// GET a customer with their order history
	p.GET("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		customerID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		info, err := cs.Get(c.Request().Context(), claims.CustomerID, customerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, info)
	})

	// UPDATE a customer's profile
	p.PUT("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		customerID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		var cmd services.CustomerUpdateCommand
		if err := c.Bind(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		updated, err := cs.Update(c.Request().Context(), claims.CustomerID, customerID, cmd)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, updated)
	})

	// DEACTIVATE (soft delete)
	p.DELETE("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		customerID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if err := cs.Deactivate(c.Request().Context(), claims.CustomerID, customerID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "customer deactivated"})
	})

	// REACTIVATE (admin only)
	p.POST("/:id/reactivate", func(c echo.Context) error {
		customerID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		customer, err := cs.Reactivate(c.Request().Context(), customerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, customer)
	}, middleware.AdminOnly)

	// GET lifetime spending
	p.GET("/:id/spending", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		customerID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		total, err := cs.GetSpending(c.Request().Context(), claims.CustomerID, customerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]float64{"totalspending": total})
	})
}
