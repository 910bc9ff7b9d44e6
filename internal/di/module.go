package di

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/fixpoint/fixpoint/internal/app"
	"github.com/fixpoint/fixpoint/internal/config"
	"github.com/fixpoint/fixpoint/internal/domain/repository"
	"github.com/fixpoint/fixpoint/internal/logger"
	"github.com/fixpoint/fixpoint/internal/pkg/auth"
	"github.com/fixpoint/fixpoint/internal/pkg/upload"
	"github.com/fixpoint/fixpoint/internal/server/http/router"
	"github.com/fixpoint/fixpoint/internal/storage/memory"
	"github.com/fixpoint/fixpoint/internal/storage/postgres"
	"github.com/fixpoint/fixpoint/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storageModule,
		upload.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// storageModule selects the backing store at startup: PostgreSQL by default,
// the in-memory store when MEMORY_STORE is set.
var storageModule = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.OrderLogRepository { return f.OrderLogs() },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.MemoryStore {
		p.Logger.Info("using in-memory store")
		return memory.New(), nil
	}

	storage, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			storage.Close()
			return nil
		},
	})
	return storage, nil
}
