package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
	"tienda/shophub/internal/repository"
)

type OrderService interface {
	Create(ctx context.Context, caller *model.User) (*model.Order, error)
	// List returns the caller's orders; admins see all orders.
	List(ctx context.Context, caller *model.User) ([]model.Order, error)
	Get(ctx context.Context, caller *model.User, orderID uint) (*model.Order, error)
	UpdateStatus(ctx context.Context, caller *model.User, orderID uint, status string) (*model.Order, error)
	Delete(ctx context.Context, caller *model.User, orderID uint) error

	// AddItem adds quantity of a product to an order, decrementing stock in
	// the same transaction. orderID zero means "start a new order for the
	// caller".
	AddItem(ctx context.Context, caller *model.User, orderID, productID uint, quantity int) (*model.Order, *model.OrderItem, error)
	// DeleteItem removes an item from an order. Stock is not restored; see
	// the repository contract.
	DeleteItem(ctx context.Context, caller *model.User, orderID, itemID uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) Create(ctx context.Context, caller *model.User) (*model.Order, error) {
	order := &model.Order{
		UserID: caller.ID,
		Status: model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, caller *model.User) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)
	if RequireRole(caller, model.RoleAdmin) {
		orders, err = s.orderRepo.List(ctx)
	} else {
		orders, err = s.orderRepo.ListByUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, caller *model.User, orderID uint) (*model.Order, error) {
	order, err := s.getOwned(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, caller *model.User, orderID uint, status string) (*model.Order, error) {
	if status == "" {
		ve := &ValidationError{}
		ve.add("status", "status is required")
		return nil, ve
	}

	order, err := s.getOwned(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, caller *model.User, orderID uint) error {
	if _, err := s.getOwned(ctx, caller, orderID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (s *orderService) AddItem(ctx context.Context, caller *model.User, orderID, productID uint, quantity int) (*model.Order, *model.OrderItem, error) {
	ve := &ValidationError{}
	if productID == 0 {
		ve.add("product_id", "product_id is required")
	}
	if quantity <= 0 {
		ve.add("quantity", "quantity must be a positive integer")
	}
	if ve.any() {
		return nil, nil, ve
	}

	var order *model.Order
	if orderID != 0 {
		existing, err := s.getOwned(ctx, caller, orderID)
		if err != nil {
			return nil, nil, err
		}
		order = existing
	} else {
		order = &model.Order{
			UserID: caller.ID,
			Status: model.OrderStatusPending,
		}
	}

	item, err := s.orderRepo.AddItem(ctx, order, productID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, nil, ErrInsufficientStock
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, nil, ErrProductNotFound
		default:
			return nil, nil, fmt.Errorf("add order item: %w", err)
		}
	}
	return order, item, nil
}

func (s *orderService) DeleteItem(ctx context.Context, caller *model.User, orderID, itemID uint) error {
	if _, err := s.getOwned(ctx, caller, orderID); err != nil {
		return err
	}

	item, err := s.orderRepo.GetItem(ctx, orderID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderItemNotFound
		}
		return fmt.Errorf("lookup order item: %w", err)
	}

	if err := s.orderRepo.DeleteItem(ctx, item.ID); err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

// getOwned loads the order and applies the uniform owner-or-admin policy for
// order mutation and reads.
func (s *orderService) getOwned(ctx context.Context, caller *model.User, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("lookup order: %w", err)
	}
	if !RequireSelfOrRole(caller, order.UserID, model.RoleAdmin) {
		return nil, ErrForbidden
	}
	return order, nil
}

var _ OrderService = (*orderService)(nil)
