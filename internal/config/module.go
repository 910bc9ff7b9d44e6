package config

import "go.uber.org/fx"

// Module registers the configuration loader with fx.
var Module = fx.Provide(Load)
