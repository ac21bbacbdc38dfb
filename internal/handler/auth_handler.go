package handler

import (
	"github.com/gin-gonic/gin"

	"tienda/shophub/internal/service"
	"tienda/shophub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		writeServiceError(c, err, "registration failed")
		return
	}

	response.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err, "login failed")
		return
	}

	response.Success(c, tokens)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err, "token refresh failed")
		return
	}

	response.Success(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		response.InternalError(c, "logout failed")
		return
	}
	response.Success(c, gin.H{"message": "successfully logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), caller)
	if err != nil {
		writeServiceError(c, err, "fetch user failed")
		return
	}
	response.Success(c, user)
}

// Update patches a user record. Without an id in the body the caller targets
// their own record.
func (h *AuthHandler) Update(c *gin.Context) {
	caller, err := currentUser(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	targetID := caller.ID
	if patch.ID != nil {
		targetID = *patch.ID
	}

	user, deactivated, err := h.userService.Update(c.Request.Context(), caller, targetID, patch)
	if err != nil {
		writeServiceError(c, err, "update user failed")
		return
	}

	if deactivated {
		response.Success(c, gin.H{"message": "account deactivated, you have been logged out"})
		return
	}
	response.Success(c, user)
}

func (h *AuthHandler) Delete(c *gin.Context) {
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

func (h *AuthHandler) GetUser(c *gin.Context) {
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

func (h *AuthHandler) ListUsers(c *gin.Context) {
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
