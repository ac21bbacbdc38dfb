package handler

import (
	"github.com/gin-gonic/gin"

	"tienda/shophub/internal/service"
	"tienda/shophub/pkg/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "list products failed")
		return
	}
	response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "fetch product failed")
		return
	}
	response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), caller, input)
	if err != nil {
		writeServiceError(c, err, "create product failed")
		return
	}
	response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch service.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), caller, id, patch)
	if err != nil {
		writeServiceError(c, err, "update product failed")
		return
	}
	response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), caller, id); err != nil {
		writeServiceError(c, err, "delete product failed")
		return
	}
	response.Success(c, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "list categories failed")
		return
	}
	response.Success(c, categories)
}

func (h *ProductHandler) ListCategoryProducts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	products, err := h.catalogService.ListProductsByCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "list products failed")
		return
	}
	response.Success(c, products)
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), caller, req.Name, req.Description)
	if err != nil {
		writeServiceError(c, err, "create category failed")
		return
	}
	response.Created(c, category)
}

func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), caller, id); err != nil {
		writeServiceError(c, err, "delete category failed")
		return
	}
	response.Success(c, gin.H{"message": "category deleted"})
}
