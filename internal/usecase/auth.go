package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
	pkgAuth "github.com/fixpoint/fixpoint/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new account and returns it together with an auth token.
// An empty role defaults to customer.
func (u *AuthUseCase) Register(ctx context.Context, username, password, phone string, role model.Role) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		return nil, "", err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, "", err
	}
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, "", domainErrors.Validation("unknown role")
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, username, hash, role, phone)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns the account with a token.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the actor encoded in the token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	id, role, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Actor{}, err
	}
	actor := model.Actor{ID: id, Role: model.Role(role)}
	if !actor.Role.Valid() {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return actor, nil
}

// GetByID fetches an account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
