package handler

import (
	"github.com/gin-gonic/gin"

	"tienda/shophub/internal/service"
	"tienda/shophub/pkg/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, "create order failed")
		return
	}
	response.Created(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, "list orders failed")
		return
	}
	response.Success(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), caller, orderID)
	if err != nil {
		writeServiceError(c, err, "fetch order failed")
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), caller, orderID, req.Status)
	if err != nil {
		writeServiceError(c, err, "update order failed")
		return
	}
	response.Success(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), caller, orderID); err != nil {
		writeServiceError(c, err, "delete order failed")
		return
	}
	response.Success(c, gin.H{"message": "order deleted"})
}

// AddItem appends an item to an existing order.
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.addItem(c, orderID)
}

// AddItemNewOrder starts a fresh pending order for the caller and adds the
// item to it.
func (h *OrderHandler) AddItemNewOrder(c *gin.Context) {
	h.addItem(c, 0)
}

func (h *OrderHandler) addItem(c *gin.Context, orderID uint) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, item, err := h.orderService.AddItem(c.Request.Context(), caller, orderID, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(c, err, "add order item failed")
		return
	}
	response.Created(c, gin.H{"order_id": order.ID, "order_item": item})
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteItem(c.Request.Context(), caller, orderID, itemID); err != nil {
		writeServiceError(c, err, "delete order item failed")
		return
	}
	response.Success(c, gin.H{"message": "order item deleted"})
}
