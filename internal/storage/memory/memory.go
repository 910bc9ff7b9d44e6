package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
)

// Store is an in-memory repository facade with the same semantics as the
// PostgreSQL storage. It backs the offline mock mode and serves as the
// engine's test double. A single mutex stands in for the database row lock,
// so the take race resolves the same way: one winner, the loser observes the
// already-updated status.
type Store struct {
	mu sync.Mutex

	users    map[int64]*model.User
	userIDs  map[string]int64
	orders   map[int64]*model.Order
	orderNos map[string]int64
	logs     map[int64][]model.OrderLogEntry

	nextUserID  int64
	nextOrderID int64
	nextLogID   int64

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:       make(map[int64]*model.User),
		userIDs:     make(map[string]int64),
		orders:      make(map[int64]*model.Order),
		orderNos:    make(map[string]int64),
		logs:        make(map[int64][]model.OrderLogEntry),
		nextUserID:  1,
		nextOrderID: 1,
		nextLogID:   1,
		now:         time.Now,
	}
}

// Factory methods for domain repositories.
func (s *Store) Users() repository.UserRepository { return &userRepository{store: s} }

func (s *Store) Orders() repository.OrderRepository { return &orderRepository{store: s} }

func (s *Store) OrderLogs() repository.OrderLogRepository { return &orderLogRepository{store: s} }

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, username, passwordHash string, role model.Role, phone string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.userIDs[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{
		ID:           s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Phone:        phone,
		CreatedAt:    s.now(),
	}
	s.nextUserID++
	s.users[user.ID] = user
	s.userIDs[username] = user.ID
	out := *user
	return &out, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, username string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.userIDs[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *user
	return &out, nil
}

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orderNos[order.OrderNo]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	now := s.now()
	stored := *order
	stored.ID = s.nextOrderID
	stored.Status = model.OrderStatusPending
	stored.StaffID = nil
	stored.Rating = nil
	stored.RatingComment = ""
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.nextOrderID++
	s.orders[stored.ID] = &stored
	s.orderNos[stored.OrderNo] = stored.ID

	s.appendLog(stored.ID, nil, model.LogActionCreate, model.CreateLogMessage)

	out := stored
	return &out, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *order
	return &out, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	filter.Normalize()

	var matched []model.Order
	for _, order := range s.orders {
		if filter.CustomerID != nil && order.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, *order)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := filter.Offset()
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *orderRepository) Take(ctx context.Context, orderID, staffID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending {
		return domainErrors.InvalidTransition("order is not available for taking")
	}

	order.Status = model.OrderStatusTaken
	order.StaffID = &staffID
	order.UpdatedAt = s.now()
	s.appendLog(orderID, &staffID, model.LogActionTake, model.TakeLogMessage)
	return nil
}

func (r *orderRepository) Finish(ctx context.Context, orderID, staffID int64, message string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusTaken || order.StaffID == nil || *order.StaffID != staffID {
		return domainErrors.InvalidTransition("order is not in progress")
	}

	order.Status = model.OrderStatusDone
	order.UpdatedAt = s.now()
	s.appendLog(orderID, &staffID, model.LogActionFinish, message)
	return nil
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	switch order.Status {
	case model.OrderStatusCancelled:
		return domainErrors.InvalidTransition("order already cancelled")
	case model.OrderStatusDone:
		return domainErrors.InvalidTransition("order completed, cannot cancel")
	}

	order.Status = model.OrderStatusCancelled
	order.UpdatedAt = s.now()
	s.appendLog(orderID, nil, model.LogActionCancel, model.CancelLogMessage)
	return nil
}

func (r *orderRepository) UpdateInfo(ctx context.Context, orderID int64, patch model.OrderPatch) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status.Terminal() {
		return domainErrors.InvalidTransition("order can no longer be edited")
	}

	if patch.Location != nil {
		order.Location = *patch.Location
	}
	if patch.ContactPhone != nil {
		order.ContactPhone = *patch.ContactPhone
	}
	if patch.Description != nil {
		order.Description = *patch.Description
	}
	order.UpdatedAt = s.now()
	s.appendLog(orderID, nil, model.LogActionUpdate, model.UpdateLogMessage(patch))
	return nil
}

func (r *orderRepository) Rate(ctx context.Context, orderID int64, rating int, comment string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusDone {
		return domainErrors.InvalidTransition("order is not completed")
	}
	if order.Rating != nil {
		return domainErrors.InvalidTransition("order already rated")
	}

	order.Rating = &rating
	order.RatingComment = comment
	order.UpdatedAt = s.now()
	s.appendLog(orderID, nil, model.LogActionRate, model.RateLogMessage(rating, comment))
	return nil
}

func (r *orderRepository) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Order
	for _, order := range s.orders {
		if order.Status == model.OrderStatusPending && order.CreatedAt.Before(before) {
			matched = append(matched, *order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type orderLogRepository struct {
	store *Store
}

func (r *orderLogRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.logs[orderID]
	out := make([]model.OrderLogEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// appendLog assumes the store mutex is held.
func (s *Store) appendLog(orderID int64, staffID *int64, action model.LogAction, message string) {
	entry := model.OrderLogEntry{
		ID:        s.nextLogID,
		OrderID:   orderID,
		StaffID:   staffID,
		Action:    action,
		Message:   message,
		CreatedAt: s.now(),
	}
	s.nextLogID++
	s.logs[orderID] = append(s.logs[orderID], entry)
}



