package test

import (
	"context"
	"sync"
	"time"

	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, model.Role) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (model.Actor, error)
}

// Register returns a user and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, username, password, phone string, role model.Role) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, password, phone, role)
	}
	if role == "" {
		role = model.RoleCustomer
	}
	return &model.User{ID: 1, Username: username, Role: role, Phone: phone}, "token", nil
}

// Authenticate returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return &model.User{ID: 1, Username: username, Role: model.RoleCustomer}, "token", nil
}

// ParseToken resolves the stored actor.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{ID: 1, Role: model.RoleCustomer}, nil
}

// OrderFacadeStub simulates order operations for HTTP layer tests.
type OrderFacadeStub struct {
	SubmitFn     func(context.Context, model.Actor, usecase.SubmitInput) (*model.Order, error)
	TakeFn       func(context.Context, model.Actor, int64) error
	FinishFn     func(context.Context, model.Actor, int64, string) error
	CancelFn     func(context.Context, model.Actor, int64) error
	UpdateInfoFn func(context.Context, model.Actor, int64, model.OrderPatch) error
	RateFn       func(context.Context, model.Actor, int64, int, string) error
	GetFn        func(context.Context, model.Actor, int64) (*model.Order, error)
	ListFn       func(context.Context, model.Actor, *model.OrderStatus, int, int) ([]model.Order, error)
	LogsFn       func(context.Context, model.Actor, int64) ([]model.OrderLogEntry, error)
}

func (s OrderFacadeStub) Submit(ctx context.Context, actor model.Actor, in usecase.SubmitInput) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, actor, in)
	}
	return &model.Order{ID: 1, OrderNo: "123456", CustomerID: actor.ID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) Take(ctx context.Context, actor model.Actor, orderID int64) error {
	if s.TakeFn != nil {
		return s.TakeFn(ctx, actor, orderID)
	}
	return nil
}

func (s OrderFacadeStub) Finish(ctx context.Context, actor model.Actor, orderID int64, message string) error {
	if s.FinishFn != nil {
		return s.FinishFn(ctx, actor, orderID, message)
	}
	return nil
}

func (s OrderFacadeStub) Cancel(ctx context.Context, actor model.Actor, orderID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, orderID)
	}
	return nil
}

func (s OrderFacadeStub) UpdateInfo(ctx context.Context, actor model.Actor, orderID int64, patch model.OrderPatch) error {
	if s.UpdateInfoFn != nil {
		return s.UpdateInfoFn(ctx, actor, orderID, patch)
	}
	return nil
}

func (s OrderFacadeStub) Rate(ctx context.Context, actor model.Actor, orderID int64, rating int, comment string) error {
	if s.RateFn != nil {
		return s.RateFn(ctx, actor, orderID, rating, comment)
	}
	return nil
}

func (s OrderFacadeStub) Get(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, orderID)
	}
	return &model.Order{ID: orderID, OrderNo: "123456", CustomerID: actor.ID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) List(ctx context.Context, actor model.Actor, status *model.OrderStatus, page, pageSize int) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, actor, status, page, pageSize)
	}
	return []model.Order{{ID: 1, OrderNo: "123456", CustomerID: actor.ID, Status: model.OrderStatusPending}}, nil
}

func (s OrderFacadeStub) Logs(ctx context.Context, actor model.Actor, orderID int64) ([]model.OrderLogEntry, error) {
	if s.LogsFn != nil {
		return s.LogsFn(ctx, actor, orderID)
	}
	return []model.OrderLogEntry{{ID: 1, OrderID: orderID, Action: model.LogActionCreate, Message: model.CreateLogMessage}}, nil
}

// ServiceFacadeStub aggregates facade stubs for HTTP layer tests.
type ServiceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
}

// StaleSourceStub records stale order queries for monitor tests.
type StaleSourceStub struct {
	StalePendingFn func(context.Context, time.Time, int) ([]model.Order, error)
	Orders         []model.Order

	mu    sync.Mutex
	calls int
}

func (s *StaleSourceStub) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.StalePendingFn != nil {
		return s.StalePendingFn(ctx, before, limit)
	}
	return s.Orders, nil
}

// Calls reports how many times StalePending ran.
func (s *StaleSourceStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
