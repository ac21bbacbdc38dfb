package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/shophub/internal/model"
)

func catalogActors() (admin, seller, user *model.User) {
	admin = &model.User{ID: 2, Role: model.RoleAdmin, IsActive: true}
	seller = &model.User{ID: 3, Role: model.RoleSeller, IsActive: true}
	user = &model.User{ID: 4, Role: model.RoleUser, IsActive: true}
	return admin, seller, user
}

func TestCreateProductRoleGate(t *testing.T) {
	products := &fakeProductRepo{}
	svc := NewCatalogService(products, &fakeCategoryRepo{})
	admin, seller, user := catalogActors()
	ctx := context.Background()

	input := ProductInput{Name: "Lamp", Price: 19.90, Stock: 5}

	_, err := svc.CreateProduct(ctx, user, input)
	assert.ErrorIs(t, err, ErrForbidden)

	for _, caller := range []*model.User{admin, seller} {
		product, err := svc.CreateProduct(ctx, caller, input)
		require.NoError(t, err)
		assert.Equal(t, "Lamp", product.Name)
		assert.True(t, product.IsActive)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, &fakeCategoryRepo{})
	admin, _, _ := catalogActors()

	_, err := svc.CreateProduct(context.Background(), admin, ProductInput{Price: -2, Stock: -1})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "price")
	assert.Contains(t, ve.Fields, "stock")
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, &fakeCategoryRepo{})
	admin, _, _ := catalogActors()

	catID := uint(7)
	_, err := svc.CreateProduct(context.Background(), admin, ProductInput{Name: "Lamp", Price: 10, CategoryID: &catID})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	stored := &model.Product{ID: 1, Name: "Lamp", Price: 10, Stock: 5, IsActive: true}
	var saved *model.Product
	products := &fakeProductRepo{
		GetByIDFn: func(_ context.Context, id uint) (*model.Product, error) {
			cp := *stored
			return &cp, nil
		},
		UpdateFn: func(_ context.Context, p *model.Product) error {
			saved = p
			return nil
		},
	}
	svc := NewCatalogService(products, &fakeCategoryRepo{})
	_, seller, _ := catalogActors()
	ctx := context.Background()

	price := 12.50
	updated, err := svc.UpdateProduct(ctx, seller, 1, ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12.50, updated.Price)
	assert.Equal(t, "Lamp", updated.Name, "unset fields keep their value")
	require.NotNil(t, saved)

	bad := 0.0
	_, err = svc.UpdateProduct(ctx, seller, 1, ProductPatch{Price: &bad})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")
}

func TestDeleteProduct(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, &fakeCategoryRepo{})
	admin, _, user := catalogActors()
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeleteProduct(ctx, user, 1), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, admin, 1), ErrProductNotFound)
}

func TestCreateCategory(t *testing.T) {
	categories := &fakeCategoryRepo{}
	svc := NewCatalogService(&fakeProductRepo{}, categories)
	admin, seller, _ := catalogActors()
	ctx := context.Background()

	// Category management is admin-only; sellers handle products.
	_, err := svc.CreateCategory(ctx, seller, "Lighting", "")
	assert.ErrorIs(t, err, ErrForbidden)

	category, err := svc.CreateCategory(ctx, admin, "Lighting", "lamps and bulbs")
	require.NoError(t, err)
	assert.Equal(t, "Lighting", category.Name)

	categories.GetByNameFn = func(_ context.Context, name string) (*model.Category, error) {
		return &model.Category{ID: 1, Name: name}, nil
	}
	_, err = svc.CreateCategory(ctx, admin, "Lighting", "")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestDeleteCategoryInUse(t *testing.T) {
	categories := &fakeCategoryRepo{
		GetByIDFn: func(_ context.Context, id uint) (*model.Category, error) {
			return &model.Category{ID: id, Name: "Lighting"}, nil
		},
	}
	products := &fakeProductRepo{
		CountByCategoryFn: func(_ context.Context, _ uint) (int64, error) { return 3, nil },
	}
	svc := NewCatalogService(products, categories)
	admin, _, _ := catalogActors()

	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), admin, 1), ErrCategoryInUse)

	products.CountByCategoryFn = func(_ context.Context, _ uint) (int64, error) { return 0, nil }
	assert.NoError(t, svc.DeleteCategory(context.Background(), admin, 1))
}

func TestPublicCatalogReads(t *testing.T) {
	products := &fakeProductRepo{
		ListFn: func(_ context.Context) ([]model.Product, error) {
			return []model.Product{{ID: 1, Name: "Lamp"}}, nil
		},
	}
	svc := NewCatalogService(products, &fakeCategoryRepo{})
	ctx := context.Background()

	list, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.ListProductsByCategory(ctx, 5)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
