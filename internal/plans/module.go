package plans

import (
	"go.uber.org/fx"

	"github.com/lunorise/platform/internal/config"
)

// Module wires the plan catalog from configuration.
var Module = fx.Provide(newCatalog)

type catalogParams struct {
	fx.In

	Config *config.Config
}

func newCatalog(p catalogParams) (*Catalog, error) {
	return Load(p.Config.PlansFile)
}
