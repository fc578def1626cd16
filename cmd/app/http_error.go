package main

import (
	"errors"
	"net/http"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/model"

	"github.com/labstack/echo/v4"
)

// jsonError maps domain error kinds onto HTTP statuses. Anything not in
// the taxonomy is treated as a bad request with the error text.
func jsonError(c echo.Context, err error) error {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, model.ErrPermissionDenied),
		errors.Is(err, model.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrNoShippingAddress):
		status = http.StatusBadRequest
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
