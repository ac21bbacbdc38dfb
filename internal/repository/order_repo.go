package repository

import (
	"context"

	"tienda/shophub/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	// Delete removes the order and its items in one transaction.
	Delete(ctx context.Context, id uint) error

	// AddItem atomically creates the order when order.ID is zero, creates the
	// item, decrements product stock and maintains the order total. The stock
	// decrement is a guarded update; when it matches no row the whole
	// transaction rolls back with ErrInsufficientStock. A missing product
	// surfaces as gorm.ErrRecordNotFound.
	AddItem(ctx context.Context, order *model.Order, productID uint, quantity int) (*model.OrderItem, error)

	GetItem(ctx context.Context, orderID, itemID uint) (*model.OrderItem, error)
	// DeleteItem removes an order item. Stock is intentionally not restored.
	DeleteItem(ctx context.Context, itemID uint) error
}
