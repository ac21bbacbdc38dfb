package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tienda/shophub/internal/model"
	"tienda/shophub/internal/repository"
)

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	CategoryID  *uint   `json:"category_id"`
}

// ProductPatch is a partial update; validation applies only to supplied
// fields.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *uint    `json:"category_id"`
}

type CatalogService interface {
	CreateProduct(ctx context.Context, caller *model.User, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, caller *model.User, id uint, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, caller *model.User, id uint) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uint) ([]model.Product, error)

	CreateCategory(ctx context.Context, caller *model.User, name, description string) (*model.Category, error)
	DeleteCategory(ctx context.Context, caller *model.User, id uint) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) CreateProduct(ctx context.Context, caller *model.User, input ProductInput) (*model.Product, error) {
	if !RequireRole(caller, model.RoleAdmin, model.RoleSeller) {
		return nil, ErrForbidden
	}

	ve := &ValidationError{}
	if input.Name == "" {
		ve.add("name", "name is required")
	}
	if input.Price <= 0 {
		ve.add("price", "price must be greater than zero")
	}
	if input.Stock < 0 {
		ve.add("stock", "stock cannot be negative")
	}
	if ve.any() {
		return nil, ve
	}

	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, caller *model.User, id uint, patch ProductPatch) (*model.Product, error) {
	if !RequireRole(caller, model.RoleAdmin, model.RoleSeller) {
		return nil, ErrForbidden
	}

	ve := &ValidationError{}
	if patch.Name != nil && *patch.Name == "" {
		ve.add("name", "name is required")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		ve.add("price", "price must be greater than zero")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		ve.add("stock", "stock cannot be negative")
	}
	if ve.any() {
		return nil, ve
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = patch.CategoryID
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, caller *model.User, id uint) error {
	if !RequireRole(caller, model.RoleAdmin, model.RoleSeller) {
		return ErrForbidden
	}
	if _, err := s.getProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	return s.getProduct(ctx, id)
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) ListProductsByCategory(ctx context.Context, categoryID uint) ([]model.Product, error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, caller *model.User, name, description string) (*model.Category, error) {
	if !RequireRole(caller, model.RoleAdmin) {
		return nil, ErrForbidden
	}
	if name == "" {
		ve := &ValidationError{}
		ve.add("name", "name is required")
		return nil, ve
	}

	// Case-sensitive exact match on the name.
	if _, err := s.categoryRepo.GetByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	category := &model.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// DeleteCategory enforces referential integrity: a category still referenced
// by products cannot be removed.
func (s *catalogService) DeleteCategory(ctx context.Context, caller *model.User, id uint) error {
	if !RequireRole(caller, model.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.checkCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) getProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	return product, nil
}

func (s *catalogService) checkCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("lookup category: %w", err)
	}
	return nil
}

var _ CatalogService = (*catalogService)(nil)
