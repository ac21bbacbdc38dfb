package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is inactive, contact an admin to activate it")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid or already used")
	ErrForbidden           = errors.New("access forbidden")

	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")

	ErrUsernameTaken  = errors.New("username already registered")
	ErrEmailTaken     = errors.New("email already registered")
	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category is referenced by products")

	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError carries every field violation found in a request, not just
// the first one.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) add(field string, messages ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], messages...)
}

func (e *ValidationError) any() bool { return len(e.Fields) > 0 }
