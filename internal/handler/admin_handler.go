package handler

import (
	"github.com/gin-gonic/gin"

	"tienda/shophub/internal/service"
	"tienda/shophub/pkg/response"
)

// AdminHandler exposes the user-administration surface. Role checks live in
// the service layer; these handlers only shuttle requests.
type AdminHandler struct {
	userService service.UserService
}

func NewAdminHandler(userService service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), caller, targetID)
	if err != nil {
		writeServiceError(c, err, "fetch user failed")
		return
	}
	response.Success(c, user)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, "list users failed")
		return
	}
	response.Success(c, users)
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), caller, targetID, req.Role)
	if err != nil {
		writeServiceError(c, err, "change role failed")
		return
	}
	response.Success(c, gin.H{"message": "user role updated", "user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), caller, targetID); err != nil {
		writeServiceError(c, err, "delete user failed")
		return
	}
	response.Success(c, gin.H{"message": "user deleted"})
}
