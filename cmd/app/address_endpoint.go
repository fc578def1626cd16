package main

import (
	"net/http"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAddressRoutes(g *echo.Group, as *services.AddressService) {
	p := g.Group("/addresses")
	p.Use(middleware.JWTMiddleware())

	// CREATE an address for the logged-in customer
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		var cmd services.AddressCreateCommand
		if err := c.Bind(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		address, err := as.Create(c.Request().Context(), claims.CustomerID, cmd)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, address)
	})

	// LIST own addresses
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		addresses, err := as.List(c.Request().Context(), claims.CustomerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, addresses)
	})
}
