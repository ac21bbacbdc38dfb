package service

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
	"tienda/shophub/internal/repository"
)

// memUserRepo is a map-backed UserRepository for service tests.
type memUserRepo struct {
	mu     sync.Mutex
	users  map[uint]model.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]model.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *memUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

// fakeProductRepo and fakeCategoryRepo use function fields so tests control
// each call. Unset getters report not-found; unset mutations succeed.
type fakeProductRepo struct {
	CreateFn          func(ctx context.Context, product *model.Product) error
	GetByIDFn         func(ctx context.Context, id uint) (*model.Product, error)
	ListFn            func(ctx context.Context) ([]model.Product, error)
	ListByCategoryFn  func(ctx context.Context, categoryID uint) ([]model.Product, error)
	CountByCategoryFn func(ctx context.Context, categoryID uint) (int64, error)
	UpdateFn          func(ctx context.Context, product *model.Product) error
	DeleteFn          func(ctx context.Context, id uint) error
}

func (f *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, product)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	if f.GetByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeProductRepo) List(ctx context.Context) ([]model.Product, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx)
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	if f.ListByCategoryFn == nil {
		return nil, nil
	}
	return f.ListByCategoryFn(ctx, categoryID)
}

func (f *fakeProductRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	if f.CountByCategoryFn == nil {
		return 0, nil
	}
	return f.CountByCategoryFn(ctx, categoryID)
}

func (f *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, product)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

type fakeCategoryRepo struct {
	CreateFn    func(ctx context.Context, category *model.Category) error
	GetByIDFn   func(ctx context.Context, id uint) (*model.Category, error)
	GetByNameFn func(ctx context.Context, name string) (*model.Category, error)
	ListFn      func(ctx context.Context) ([]model.Category, error)
	DeleteFn    func(ctx context.Context, id uint) error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, category)
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	if f.GetByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	if f.GetByNameFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetByNameFn(ctx, name)
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx)
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, id)
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

// memOrderRepo mirrors the transactional contract of the Postgres order
// repository: AddItem performs the stock check-and-decrement atomically
// under a mutex, so concurrent callers cannot both take the last unit.
type memOrderRepo struct {
	mu         sync.Mutex
	products   map[uint]*model.Product
	orders     map[uint]*model.Order
	items      map[uint]*model.OrderItem
	nextOrder  uint
	nextItem   uint
}

func newMemOrderRepo(products ...*model.Product) *memOrderRepo {
	r := &memOrderRepo{
		products:  make(map[uint]*model.Product),
		orders:    make(map[uint]*model.Order),
		items:     make(map[uint]*model.OrderItem),
		nextOrder: 1,
		nextItem:  1,
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memOrderRepo) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextOrder
	r.nextOrder++
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id uint) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) List(_ context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID uint) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) Update(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	for itemID, item := range r.items {
		if item.OrderID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *memOrderRepo) AddItem(_ context.Context, order *model.Order, productID uint, quantity int) (*model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if product.Stock < quantity {
		return nil, repository.ErrInsufficientStock
	}
	product.Stock -= quantity

	if order.ID == 0 {
		order.ID = r.nextOrder
		r.nextOrder++
		order.Status = model.OrderStatusPending
		cp := *order
		r.orders[order.ID] = &cp
	}

	item := &model.OrderItem{
		ID:        r.nextItem,
		OrderID:   order.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.nextItem++
	r.items[item.ID] = item

	order.TotalAmount += product.Price * float64(quantity)
	if stored, ok := r.orders[order.ID]; ok {
		stored.TotalAmount = order.TotalAmount
	}

	cp := *item
	return &cp, nil
}

func (r *memOrderRepo) GetItem(_ context.Context, orderID, itemID uint) (*model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.OrderID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memOrderRepo) DeleteItem(_ context.Context, itemID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

func (r *memOrderRepo) stock(productID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Stock
}

var _ repository.OrderRepository = (*memOrderRepo)(nil)
