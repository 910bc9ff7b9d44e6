package repository

import (
	"context"
	"time"

	"github.com/fixpoint/fixpoint/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Every
// status-changing operation writes its audit log entry in the same atomic
// unit of work as the order mutation. Ownership fields are immutable, so the
// caller performs authorization on a prior read; only the status is
// re-checked by the implementation at mutation time.
type OrderRepository interface {
	// Create persists a fresh pending order together with its create log
	// entry. Returns ErrAlreadyExists when the order number collides.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// Take atomically claims a pending order for the technician. The status
	// re-check happens under a row lock so the loser of a race observes
	// ErrInvalidTransition.
	Take(ctx context.Context, orderID, staffID int64) error
	Finish(ctx context.Context, orderID, staffID int64, message string) error
	Cancel(ctx context.Context, orderID int64) error
	UpdateInfo(ctx context.Context, orderID int64, patch model.OrderPatch) error
	Rate(ctx context.Context, orderID int64, rating int, comment string) error

	// StalePending returns pending orders created before the cutoff, oldest
	// first.
	StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error)
}
