package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	pkgAuth "github.com/fixpoint/fixpoint/internal/pkg/auth"
	"github.com/fixpoint/fixpoint/internal/server/http/dto"
	"github.com/fixpoint/fixpoint/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated caller from the context.
func CurrentActor(c *gin.Context) model.Actor {
	val, ok := c.Get(middleware.ActorContextKey)
	if !ok {
		return model.Actor{}
	}
	actor, _ := val.(model.Actor)
	return actor
}

// orderID parses the :id path parameter.
func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, status int, reason string) {
	c.JSON(status, dto.ErrorResponse{Error: reason})
}

// respondError maps a domain error onto the HTTP status taxonomy.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainErrors.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, "order not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		Phone:    user.Phone,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		OrderNo:       order.OrderNo,
		CustomerID:    order.CustomerID,
		StaffID:       order.StaffID,
		Location:      order.Location,
		ContactPhone:  order.ContactPhone,
		Description:   order.Description,
		ImageURL:      order.ImageURL,
		Status:        string(order.Status),
		Rating:        order.Rating,
		RatingComment: order.RatingComment,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
