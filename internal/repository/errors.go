package repository

import "errors"

// ErrInsufficientStock is returned by the order transaction when the guarded
// stock decrement matches no row, meaning stock < requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")
