package repository

import (
	"context"

	"github.com/fixpoint/fixpoint/internal/domain/model"
)

// UserRepository describes persistence operations with accounts.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string, role model.Role, phone string) (*model.User, error)
	GetByLogin(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
