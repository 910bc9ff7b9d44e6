package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fixpoint/fixpoint/internal/config"
	"github.com/fixpoint/fixpoint/internal/pkg/upload"
	"github.com/fixpoint/fixpoint/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade  handlers.ServiceFacade
	Uploads *upload.Store
	Config  *config.Config
	Logger  *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Uploads, p.Config, p.Logger)
}
