package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	auth := p.Group("")
	auth.Use(middleware.JWTMiddleware())

	// CREATE a gateway payment for a finished order
	auth.POST("/orders/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		redirectURL, err := ps.CreatePayment(c.Request().Context(), claims.CustomerID, orderID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]string{"redirect_url": redirectURL})
	})

	// GET the order awaiting payment, if any
	auth.GET("/pending", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		order, err := ps.PendingOrder(c.Request().Context(), claims.CustomerID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, order)
	})

	// Gateway webhook. Authenticated by signature, not by JWT.
	p.POST("/notification", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := ps.HandleGatewayNotification(c.Request().Context(), payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
}
