package feed

import "go.uber.org/fx"

var Module = fx.Provide(NewHub)
