package di

import (
	"github.com/lunorise/platform/internal/adapter/rates"
	"github.com/lunorise/platform/internal/app"
	"github.com/lunorise/platform/internal/config"
	"github.com/lunorise/platform/internal/feed"
	"github.com/lunorise/platform/internal/logger"
	"github.com/lunorise/platform/internal/pkg/auth"
	"github.com/lunorise/platform/internal/plans"
	"github.com/lunorise/platform/internal/server/http/router"
	"github.com/lunorise/platform/internal/storage/postgres"
	"github.com/lunorise/platform/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		plans.Module,
		feed.Module,
		rates.Module,
		usecase.Module,
		fx.Provide(func(client rates.Client) app.RateProvider { return client }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
