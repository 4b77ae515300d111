package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/lunorise/platform/internal/server/http/handlers"
	"github.com/lunorise/platform/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PlatformFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	planHandler := handlers.NewPlanHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	payoutHandler := handlers.NewPayoutHandler(facade)
	transactionHandler := handlers.NewTransactionHandler(facade)
	rateHandler := handlers.NewRateHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/balance", authHandler.Balance)
	userAuth.GET("/plans", planHandler.List)
	userAuth.POST("/plans/:id/purchase", planHandler.Purchase)
	userAuth.POST("/plans/:id/notify", planHandler.Notify)
	userAuth.GET("/withdrawals/quote", withdrawalHandler.Quote)
	userAuth.POST("/withdrawals", withdrawalHandler.Submit)
	userAuth.GET("/withdrawals", withdrawalHandler.List)
	userAuth.POST("/payout-methods", payoutHandler.Save)
	userAuth.GET("/payout-methods", payoutHandler.Get)
	userAuth.GET("/transactions", transactionHandler.List)
	userAuth.GET("/transactions/export", transactionHandler.Export)
	userAuth.GET("/transactions/stream", transactionHandler.Stream)

	ratesAuth := api.Group("/rates")
	ratesAuth.Use(middleware.AuthRequired(facade))
	ratesAuth.GET("/:currency", rateHandler.Get)

	return engine
}
