package main

import (
	"net/http"
	"strconv"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/middleware"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/labstack/echo/v4"
)

func registerRatingRoutes(g *echo.Group, rs *services.RatingService) {
	p := g.Group("/ratings")

	// LIST ratings for a product (public)
	p.GET("/product/:id", func(c echo.Context) error {
		productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		ratings, err := rs.ListForProduct(c.Request().Context(), productID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, ratings)
	})

	// CREATE a rating for an ordered product
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		var cmd services.RatingCreateCommand
		if err := c.Bind(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		rating, err := rs.Create(c.Request().Context(), claims.CustomerID, cmd)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, rating)
	}, middleware.JWTMiddleware())
}
