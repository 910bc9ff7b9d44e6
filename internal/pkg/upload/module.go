package upload

import (
	"go.uber.org/fx"

	"github.com/fixpoint/fixpoint/internal/config"
)

// Module exposes the upload store for fx graphs.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newStore(p storeParams) (*Store, error) {
	return NewStore(p.Config.UploadDir, p.Config.MaxUploadBytes, p.Config.PublicBaseURL)
}
