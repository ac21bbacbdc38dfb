package repository

import (
	"context"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
)

type pgOrderRepository struct {
	db *gorm.DB
}

func NewPGOrderRepository(db *gorm.DB) OrderRepository {
	return &pgOrderRepository{db: db}
}

func (r *pgOrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *pgOrderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *pgOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("id").Find(&orders).Error
	return orders, err
}

func (r *pgOrderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).Order("id").Find(&orders).Error
	return orders, err
}

func (r *pgOrderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *pgOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, "id = ?", id).Error
	})
}

func (r *pgOrderRepository) AddItem(ctx context.Context, order *model.Order, productID uint, quantity int) (*model.OrderItem, error) {
	var item *model.OrderItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}

		// Guarded decrement: the WHERE clause re-checks stock under the
		// transaction, so two concurrent buyers cannot both take the last
		// unit. Zero rows affected means another transaction got there first
		// or stock was short to begin with.
		res := tx.Model(&model.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		if order.ID == 0 {
			order.Status = model.OrderStatusPending
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		}

		item = &model.OrderItem{
			OrderID:   order.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		order.TotalAmount += product.Price * float64(quantity)
		return tx.Model(&model.Order{}).
			Where("id = ?", order.ID).
			UpdateColumn("total_amount", gorm.Expr("total_amount + ?", product.Price*float64(quantity))).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *pgOrderRepository) GetItem(ctx context.Context, orderID, itemID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).First(&item, "id = ? AND order_id = ?", itemID, orderID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pgOrderRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Delete(&model.OrderItem{}, "id = ?", itemID).Error
}
