package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/domain/model"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on. Declared locally
// so tests can substitute a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type orderLogRepository struct {
	storage *Storage
}

// newPgxPool is swappable in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := NewWithPool(pool, logger)
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// NewWithPool wraps an existing pool without schema initialization.
func NewWithPool(pool Pool, logger *slog.Logger) *Storage {
	return &Storage{pool: pool, logger: logger}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) OrderLogs() repository.OrderLogRepository {
	return &orderLogRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            order_no TEXT UNIQUE NOT NULL,
            customer_id BIGINT NOT NULL REFERENCES users(id),
            staff_id BIGINT REFERENCES users(id),
            location TEXT NOT NULL,
            contact_phone TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL,
            image_url TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            rating INT,
            rating_comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_logs (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            staff_id BIGINT REFERENCES users(id),
            action TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_logs_order ON order_logs(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, username, passwordHash string, role model.Role, phone string) (*model.User, error) {
	const query = `INSERT INTO users (username, password_hash, role, phone) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, username, passwordHash, role, phone).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.Storage(err)
	}
	u.Username = username
	u.PasswordHash = passwordHash
	u.Role = role
	u.Phone = phone
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT id, username, password_hash, role, phone, created_at FROM users WHERE username=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, username, password_hash, role, phone, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Storage(err)
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, order_no, customer_id, staff_id, location, contact_phone, description, image_url, status, rating, rating_comment, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.OrderNo, &o.CustomerID, &o.StaffID, &o.Location, &o.ContactPhone, &o.Description, &o.ImageURL, &o.Status, &o.Rating, &o.RatingComment, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	created.Status = model.OrderStatusPending

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO orders (order_no, customer_id, location, contact_phone, description, image_url, status)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)
                       RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, query,
			created.OrderNo, created.CustomerID, created.Location, created.ContactPhone,
			created.Description, created.ImageURL, created.Status,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, created.ID, nil, model.LogActionCreate, model.CreateLogMessage)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Storage(err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	filter.Normalize()

	var conditions []string
	var args []any
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.PageSize, filter.Offset())
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domainErrors.Storage(err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, domainErrors.Storage(err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Storage(err)
	}
	return result, nil
}

// lockOrder reads the order row FOR UPDATE so the status check and the
// subsequent transition commit or roll back as one unit.
func (r *orderRepository) lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	var o model.Order
	if err := scanOrder(tx.QueryRow(ctx, query, orderID), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.Storage(err)
	}
	return &o, nil
}

func (r *orderRepository) Take(ctx context.Context, orderID, staffID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending {
			return domainErrors.InvalidTransition("order is not available for taking")
		}

		const update = `UPDATE orders SET status=$1, staff_id=$2, updated_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, update, model.OrderStatusTaken, staffID, orderID); err != nil {
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, orderID, &staffID, model.LogActionTake, model.TakeLogMessage)
	})
}

func (r *orderRepository) Finish(ctx context.Context, orderID, staffID int64, message string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusTaken || order.StaffID == nil || *order.StaffID != staffID {
			return domainErrors.InvalidTransition("order is not in progress")
		}

		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		if _, err := tx.Exec(ctx, update, model.OrderStatusDone, orderID); err != nil {
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, orderID, &staffID, model.LogActionFinish, message)
	})
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		switch order.Status {
		case model.OrderStatusCancelled:
			return domainErrors.InvalidTransition("order already cancelled")
		case model.OrderStatusDone:
			return domainErrors.InvalidTransition("order completed, cannot cancel")
		}

		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		if _, err := tx.Exec(ctx, update, model.OrderStatusCancelled, orderID); err != nil {
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, orderID, nil, model.LogActionCancel, model.CancelLogMessage)
	})
}

func (r *orderRepository) UpdateInfo(ctx context.Context, orderID int64, patch model.OrderPatch) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status.Terminal() {
			return domainErrors.InvalidTransition("order can no longer be edited")
		}

		var sets []string
		var args []any
		if patch.Location != nil {
			args = append(args, *patch.Location)
			sets = append(sets, fmt.Sprintf("location=$%d", len(args)))
		}
		if patch.ContactPhone != nil {
			args = append(args, *patch.ContactPhone)
			sets = append(sets, fmt.Sprintf("contact_phone=$%d", len(args)))
		}
		if patch.Description != nil {
			args = append(args, *patch.Description)
			sets = append(sets, fmt.Sprintf("description=$%d", len(args)))
		}
		args = append(args, orderID)
		query := fmt.Sprintf(`UPDATE orders SET %s, updated_at=NOW() WHERE id=$%d`, strings.Join(sets, ", "), len(args))
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, orderID, nil, model.LogActionUpdate, model.UpdateLogMessage(patch))
	})
}

func (r *orderRepository) Rate(ctx context.Context, orderID int64, rating int, comment string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := r.lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusDone {
			return domainErrors.InvalidTransition("order is not completed")
		}
		if order.Rating != nil {
			return domainErrors.InvalidTransition("order already rated")
		}

		const update = `UPDATE orders SET rating=$1, rating_comment=$2, updated_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, update, rating, comment, orderID); err != nil {
			return domainErrors.Storage(err)
		}
		return r.storage.appendLogTx(ctx, tx, orderID, nil, model.LogActionRate, model.RateLogMessage(rating, comment))
	})
}

func (r *orderRepository) StalePending(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 AND created_at < $2 ORDER BY created_at LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPending, before, limit)
	if err != nil {
		return nil, domainErrors.Storage(err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, domainErrors.Storage(err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Storage(err)
	}
	return result, nil
}

// --- OrderLogRepository implementation ---

func (s *Storage) appendLogTx(ctx context.Context, tx pgx.Tx, orderID int64, staffID *int64, action model.LogAction, message string) error {
	const query = `INSERT INTO order_logs (order_id, staff_id, action, message) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, orderID, staffID, action, message); err != nil {
		return domainErrors.Storage(err)
	}
	return nil
}

func (r *orderLogRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderLogEntry, error) {
	const query = `SELECT id, order_id, staff_id, action, message, created_at
                   FROM order_logs WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, domainErrors.Storage(err)
	}
	defer rows.Close()

	var result []model.OrderLogEntry
	for rows.Next() {
		var e model.OrderLogEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.StaffID, &e.Action, &e.Message, &e.CreatedAt); err != nil {
			return nil, domainErrors.Storage(err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.Storage(err)
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domainErrors.Storage(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
