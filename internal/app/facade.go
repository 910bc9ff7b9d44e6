package app

import (
	"context"
	"time"

	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/usecase"
)

// ServiceFacade aggregates the auth and order use cases behind a single
// surface consumed by the HTTP layer and the background monitor.
type ServiceFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
}

func NewServiceFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase) *ServiceFacade {
	return &ServiceFacade{auth: auth, orders: orders}
}

func (f *ServiceFacade) Register(ctx context.Context, username, password, phone string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, username, password, phone, role)
}

func (f *ServiceFacade) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, username, password)
}

func (f *ServiceFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *ServiceFacade) Submit(ctx context.Context, actor model.Actor, in usecase.SubmitInput) (*model.Order, error) {
	return f.orders.Submit(ctx, actor, in)
}

func (f *ServiceFacade) Take(ctx context.Context, actor model.Actor, orderID int64) error {
	return f.orders.Take(ctx, actor, orderID)
}

func (f *ServiceFacade) Finish(ctx context.Context, actor model.Actor, orderID int64, message string) error {
	return f.orders.Finish(ctx, actor, orderID, message)
}

func (f *ServiceFacade) Cancel(ctx context.Context, actor model.Actor, orderID int64) error {
	return f.orders.Cancel(ctx, actor, orderID)
}

func (f *ServiceFacade) UpdateInfo(ctx context.Context, actor model.Actor, orderID int64, patch model.OrderPatch) error {
	return f.orders.UpdateInfo(ctx, actor, orderID, patch)
}

func (f *ServiceFacade) Rate(ctx context.Context, actor model.Actor, orderID int64, rating int, comment string) error {
	return f.orders.Rate(ctx, actor, orderID, rating, comment)
}

func (f *ServiceFacade) Get(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, actor, orderID)
}

func (f *ServiceFacade) List(ctx context.Context, actor model.Actor, status *model.OrderStatus, page, pageSize int) ([]model.Order, error) {
	return f.orders.List(ctx, actor, status, page, pageSize)
}

func (f *ServiceFacade) Logs(ctx context.Context, actor model.Actor, orderID int64) ([]model.OrderLogEntry, error) {
	return f.orders.Logs(ctx, actor, orderID)
}

func (f *ServiceFacade) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	return f.orders.StalePending(ctx, before, limit)
}
