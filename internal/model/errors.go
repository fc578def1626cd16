package model

import "errors"

// Domain error kinds. Repositories and services wrap these with
// operation context; the HTTP layer maps them to status codes with
// errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInsufficientStock = errors.New("not enough product in stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotOwner          = errors.New("order does not belong to customer")
	ErrNoShippingAddress = errors.New("no shipping address set")
)
