package repository

import (
	"context"

	"github.com/fixpoint/fixpoint/internal/domain/model"
)

// OrderLogRepository reads the append-only audit trail. Entries are written
// by OrderRepository inside the mutating transactions.
type OrderLogRepository interface {
	// ListByOrder returns entries in chronological order.
	ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error)
}
