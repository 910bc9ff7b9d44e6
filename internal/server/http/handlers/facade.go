package handlers

import (
	"context"

	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, username, password, phone string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Submit(ctx context.Context, actor model.Actor, in usecase.SubmitInput) (*model.Order, error)
	Take(ctx context.Context, actor model.Actor, orderID int64) error
	Finish(ctx context.Context, actor model.Actor, orderID int64, message string) error
	Cancel(ctx context.Context, actor model.Actor, orderID int64) error
	UpdateInfo(ctx context.Context, actor model.Actor, orderID int64, patch model.OrderPatch) error
	Rate(ctx context.Context, actor model.Actor, orderID int64, rating int, comment string) error
	Get(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error)
	List(ctx context.Context, actor model.Actor, status *model.OrderStatus, page, pageSize int) ([]model.Order, error)
	Logs(ctx context.Context, actor model.Actor, orderID int64) ([]model.OrderLogEntry, error)
}

// ServiceFacade aggregates the full set of operations used across handlers.
type ServiceFacade interface {
	AuthFacade
	OrderFacade
}
