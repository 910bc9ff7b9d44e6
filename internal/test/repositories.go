package test

import (
	"context"
	"time"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers a user unless one already exists or the stub has an
// explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, username, passwordHash string, role model.Role, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Username: username, PasswordHash: passwordHash, Role: role, Phone: phone}
	s.Next++
	s.Users[username] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches a user by username or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour per method.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListFn         func(context.Context, model.OrderFilter) ([]model.Order, error)
	TakeFn         func(context.Context, int64, int64) error
	FinishFn       func(context.Context, int64, int64, string) error
	CancelFn       func(context.Context, int64) error
	UpdateInfoFn   func(context.Context, int64, model.OrderPatch) error
	RateFn         func(context.Context, int64, int, string) error
	StalePendingFn func(context.Context, time.Time, int) ([]model.Order, error)

	Orders []model.Order
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Orders) + 1)
	s.Orders = append(s.Orders, created)
	return &created, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Orders, nil
}

func (s *OrderRepositoryStub) Take(ctx context.Context, orderID, staffID int64) error {
	if s.TakeFn != nil {
		return s.TakeFn(ctx, orderID, staffID)
	}
	return nil
}

func (s *OrderRepositoryStub) Finish(ctx context.Context, orderID, staffID int64, message string) error {
	if s.FinishFn != nil {
		return s.FinishFn(ctx, orderID, staffID, message)
	}
	return nil
}

func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return nil
}

func (s *OrderRepositoryStub) UpdateInfo(ctx context.Context, orderID int64, patch model.OrderPatch) error {
	if s.UpdateInfoFn != nil {
		return s.UpdateInfoFn(ctx, orderID, patch)
	}
	return nil
}

func (s *OrderRepositoryStub) Rate(ctx context.Context, orderID int64, rating int, comment string) error {
	if s.RateFn != nil {
		return s.RateFn(ctx, orderID, rating, comment)
	}
	return nil
}

func (s *OrderRepositoryStub) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	if s.StalePendingFn != nil {
		return s.StalePendingFn(ctx, before, limit)
	}
	return nil, nil
}

// OrderLogRepositoryStub returns a preconfigured audit trail.
type OrderLogRepositoryStub struct {
	ListFn  func(context.Context, int64) ([]model.OrderLogEntry, error)
	Entries []model.OrderLogEntry
}

func (s *OrderLogRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, orderID)
	}
	return s.Entries, nil
}

// FactoryStub bundles repository stubs behind the factory contract.
type FactoryStub struct {
	UserRepo     repository.UserRepository
	OrderRepo    repository.OrderRepository
	OrderLogRepo repository.OrderLogRepository
}

func (f *FactoryStub) Users() repository.UserRepository         { return f.UserRepo }
func (f *FactoryStub) Orders() repository.OrderRepository       { return f.OrderRepo }
func (f *FactoryStub) OrderLogs() repository.OrderLogRepository { return f.OrderLogRepo }

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.OrderLogRepository = (*OrderLogRepositoryStub)(nil)
	_ repository.Factory            = (*FactoryStub)(nil)
)
