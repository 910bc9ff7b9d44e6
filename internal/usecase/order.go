package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
)

// orderNoAttempts bounds the retries when a generated order number collides
// with an existing one.
const orderNoAttempts = 3

// SubmitInput carries a validated order submission.
type SubmitInput struct {
	Location     string
	ContactPhone string
	Description  string
	ImageURL     string
}

// Validate checks the required submission fields.
func (in SubmitInput) Validate() error {
	if strings.TrimSpace(in.Location) == "" {
		return domainErrors.Validation("location is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return domainErrors.Validation("description is required")
	}
	return ValidatePhone(in.ContactPhone)
}

// OrderUseCase is the order lifecycle engine: it validates input, applies the
// authorization policy and delegates state transitions to the repository,
// which performs them atomically together with the audit log writes.
type OrderUseCase struct {
	orders repository.OrderRepository
	logs   repository.OrderLogRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, logs repository.OrderLogRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, logs: logs}
}

// Submit creates a pending order for the customer.
func (u *OrderUseCase) Submit(ctx context.Context, actor model.Actor, in SubmitInput) (*model.Order, error) {
	if err := Authorize(actor, ActionSubmit, nil); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerID:   actor.ID,
		Location:     strings.TrimSpace(in.Location),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Status:       model.OrderStatusPending,
	}

	// The number is short and time-derived, so collisions are possible; the
	// store enforces uniqueness and we retry with a fresh number.
	var lastErr error
	for attempt := 0; attempt < orderNoAttempts; attempt++ {
		order.OrderNo = generateOrderNo()
		created, err := u.orders.Create(ctx, order)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Take claims a pending order for the technician. The decisive status check
// happens inside the repository under a row lock, so a simultaneous second
// caller fails with ErrInvalidTransition instead of double-assigning.
func (u *OrderUseCase) Take(ctx context.Context, actor model.Actor, orderID int64) error {
	if err := Authorize(actor, ActionTake, nil); err != nil {
		return err
	}
	return u.orders.Take(ctx, orderID, actor.ID)
}

// Finish marks a taken order as done. Only the assigned technician may
// finish; an empty message falls back to a default.
func (u *OrderUseCase) Finish(ctx context.Context, actor model.Actor, orderID int64, message string) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionFinish, order); err != nil {
		return err
	}
	if message = strings.TrimSpace(message); message == "" {
		message = "order completed"
	}
	return u.orders.Finish(ctx, orderID, actor.ID, message)
}

// Cancel moves a non-terminal order to cancelled on behalf of its owner.
func (u *OrderUseCase) Cancel(ctx context.Context, actor model.Actor, orderID int64) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionCancel, order); err != nil {
		return err
	}
	return u.orders.Cancel(ctx, orderID)
}

// UpdateInfo applies a partial edit of the free-form fields while the order
// is still open.
func (u *OrderUseCase) UpdateInfo(ctx context.Context, actor model.Actor, orderID int64, patch model.OrderPatch) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionUpdate, order); err != nil {
		return err
	}
	if patch.Empty() {
		return domainErrors.Validation("at least one field must be provided")
	}
	return u.orders.UpdateInfo(ctx, orderID, patch)
}

// Rate records the customer's one-time rating of a completed order.
func (u *OrderUseCase) Rate(ctx context.Context, actor model.Actor, orderID int64, rating int, comment string) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionRate, order); err != nil {
		return err
	}
	return u.orders.Rate(ctx, orderID, rating, strings.TrimSpace(comment))
}

// Get returns a single order subject to the view policy.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionView, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns a page of orders: customers see only their own, technicians
// see all orders with an optional status filter. Newest first.
func (u *OrderUseCase) List(ctx context.Context, actor model.Actor, status *model.OrderStatus, page, pageSize int) ([]model.Order, error) {
	filter := model.OrderFilter{Page: page, PageSize: pageSize}
	switch actor.Role {
	case model.RoleStaff:
		if err := Authorize(actor, ActionListAll, nil); err != nil {
			return nil, err
		}
		if status != nil && !status.Valid() {
			return nil, domainErrors.Validation("unknown status filter")
		}
		filter.Status = status
	case model.RoleCustomer:
		if err := Authorize(actor, ActionListOwn, nil); err != nil {
			return nil, err
		}
		customerID := actor.ID
		filter.CustomerID = &customerID
	default:
		return nil, domainErrors.Forbidden("unknown role")
	}
	filter.Normalize()
	return u.orders.List(ctx, filter)
}

// Logs returns the chronological audit trail of an order, technicians only.
func (u *OrderUseCase) Logs(ctx context.Context, actor model.Actor, orderID int64) ([]model.OrderLogEntry, error) {
	if err := Authorize(actor, ActionViewLogs, nil); err != nil {
		return nil, err
	}
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.logs.ListByOrder(ctx, orderID)
}

// StalePending reports pending orders waiting longer than the cutoff.
func (u *OrderUseCase) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	return u.orders.StalePending(ctx, before, limit)
}

// generateOrderNo derives a 6-digit human-facing code from the current time
// plus a random suffix, mirroring the codes printed on paper tickets.
func generateOrderNo() string {
	ms := time.Now().UnixMilli() % 100000
	suffix := 10 + rand.IntN(90)
	no := fmt.Sprintf("%05d%02d", ms, suffix)
	return no[len(no)-6:]
}
