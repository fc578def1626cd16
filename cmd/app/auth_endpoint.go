package main

import (
	"net/http"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, as *services.AuthService) {
	p := g.Group("/auth")

	// REGISTER
	p.POST("/register", func(c echo.Context) error {
		req := new(services.RegisterCommand)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		token, err := as.Register(c.Request().Context(), *req)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]string{"message": "registered, confirmation email sent", "token": token})
	})

	// CONFIRM registration
	p.GET("/confirm", func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "token required"})
		}
		if err := as.Confirm(c.Request().Context(), token); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "registration confirmed"})
	})

	// LOGIN
	p.POST("/login", func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		customer, err := as.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		token, err := middleware.GenerateToken(customer.CustomerID, customer.Email, customer.Roles, 24)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token generation failed"})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"token": token, "customer": customer})
	})

	// CLEANUP expired tokens, triggered by an external scheduler
	p.POST("/cleanup-expired", func(c echo.Context) error {
		n, err := as.CleanupExpiredTokens(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"removed": n})
	}, middleware.JWTMiddleware(), middleware.AdminOnly)
}
