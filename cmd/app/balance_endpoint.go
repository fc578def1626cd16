package main

import (
	"net/http"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

func registerBalanceRoutes(g *echo.Group, bs *services.BalanceService) {
	p := g.Group("/balance")
	p.Use(middleware.JWTMiddleware())

	// GET the webshop balance (admin only)
	p.GET("", func(c echo.Context) error {
		total, err := bs.Get(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]float64{"balance": total})
	}, middleware.AdminOnly)
}
