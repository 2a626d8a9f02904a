// Package apperr holds the sentinel errors shared by services and
// controllers. Services return these (or wrap storage faults with
// ErrPersistence); controllers map them to HTTP statuses with errors.Is.
package apperr

import "errors"

var (
	ErrMissingToken       = errors.New("missing or malformed credential")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrMenuNotFound    = errors.New("menu item not found")
	ErrLineNotFound    = errors.New("item not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrPersistence = errors.New("storage failure")
)
