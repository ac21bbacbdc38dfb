package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/shophub/internal/model"
)

func TestCreateAndListOrders(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo)
	admin := &model.User{ID: 2, Role: model.RoleAdmin, IsActive: true}
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	bob := &model.User{ID: 5, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	order, err := svc.Create(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, alice.ID, order.UserID)

	_, err = svc.Create(ctx, bob)
	require.NoError(t, err)

	mine, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderOwnerOrAdmin(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo)
	admin := &model.User{ID: 2, Role: model.RoleAdmin, IsActive: true}
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	bob := &model.User{ID: 5, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	order, err := svc.Create(ctx, alice)
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.UpdateStatus(ctx, bob, order.ID, "paid")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateStatus(ctx, alice, order.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)

	assert.ErrorIs(t, svc.Delete(ctx, bob, order.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice, order.ID))
	_, err = svc.Get(ctx, alice, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddItemValidation(t *testing.T) {
	svc := NewOrderService(newMemOrderRepo())
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	var ve *ValidationError
	_, _, err := svc.AddItem(ctx, alice, 0, 0, 0)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "product_id")
	assert.Contains(t, ve.Fields, "quantity")

	_, _, err = svc.AddItem(ctx, alice, 0, 1, -3)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "quantity")
}

func TestAddItemDecrementsStock(t *testing.T) {
	repo := newMemOrderRepo(&model.Product{ID: 1, Name: "Lamp", Price: 10, Stock: 5, IsActive: true})
	svc := NewOrderService(repo)
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	// A zero order id starts a new pending order for the caller.
	order, item, err := svc.AddItem(ctx, alice, 0, 1, 2)
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 3, repo.stock(1))
	assert.Equal(t, 20.0, order.TotalAmount)

	// Adding to the existing order accumulates the total.
	order2, _, err := svc.AddItem(ctx, alice, order.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, order.ID, order2.ID)
	assert.Equal(t, 2, repo.stock(1))
	assert.Equal(t, 30.0, order2.TotalAmount)
}

func TestAddItemFailures(t *testing.T) {
	repo := newMemOrderRepo(&model.Product{ID: 1, Name: "Lamp", Price: 10, Stock: 2, IsActive: true})
	svc := NewOrderService(repo)
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, alice, 0, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, _, err = svc.AddItem(ctx, alice, 0, 1, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, repo.stock(1), "a failed add must not touch stock")

	_, _, err = svc.AddItem(ctx, alice, 42, 1, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAddItemConcurrentLastUnit(t *testing.T) {
	repo := newMemOrderRepo(&model.Product{ID: 1, Name: "Lamp", Price: 10, Stock: 1, IsActive: true})
	svc := NewOrderService(repo)
	ctx := context.Background()

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			caller := &model.User{ID: uint(10 + i), Role: model.RoleUser, IsActive: true}
			_, _, errs[i] = svc.AddItem(ctx, caller, 0, 1, 1)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one caller takes the last unit")
	assert.Equal(t, callers-1, insufficient)
	assert.Equal(t, 0, repo.stock(1))
}

func TestDeleteItemKeepsStock(t *testing.T) {
	repo := newMemOrderRepo(&model.Product{ID: 1, Name: "Lamp", Price: 10, Stock: 5, IsActive: true})
	svc := NewOrderService(repo)
	alice := &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	bob := &model.User{ID: 5, Role: model.RoleUser, IsActive: true}
	ctx := context.Background()

	order, item, err := svc.AddItem(ctx, alice, 0, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, repo.stock(1))

	assert.ErrorIs(t, svc.DeleteItem(ctx, bob, order.ID, item.ID), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteItem(ctx, alice, order.ID, 999), ErrOrderItemNotFound)

	require.NoError(t, svc.DeleteItem(ctx, alice, order.ID, item.ID))
	assert.Equal(t, 3, repo.stock(1), "removing an item does not restore stock")
}
