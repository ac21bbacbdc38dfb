package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"tienda/shophub/internal/handler/middleware"
	"tienda/shophub/internal/model"
	"tienda/shophub/internal/service"
	"tienda/shophub/pkg/response"
)

var ErrNoCurrentUser = errors.New("current user not found in context")

func currentUser(c *gin.Context) (*model.User, error) {
	val, exists := c.Get(middleware.ContextKeyCurrentUser)
	if !exists {
		return nil, ErrNoCurrentUser
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil, ErrNoCurrentUser
	}
	return user, nil
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// writeServiceError translates the service error taxonomy into a structured
// rejection. Anything unrecognized is a 500 with the generic fallback so
// storage detail never leaks to clients.
func writeServiceError(c *gin.Context, err error, fallback string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ValidationFailed(c, ve.Fields)
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, service.ErrForbidden.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrAccountInactive):
		response.Forbidden(c, service.ErrAccountInactive.Error())
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		response.Unauthorized(c, service.ErrRefreshTokenInvalid.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrOrderItemNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrInsufficientStock):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, fallback)
	}
}
