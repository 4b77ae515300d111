package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/feed"
	"github.com/lunorise/platform/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, phone, country, password string) (string, error)
	Authenticate(ctx context.Context, phone, country, password string) (string, error)
	ParseToken(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// PlanFacade exposes the investment plan catalog.
type PlanFacade interface {
	Plans() []model.Plan
	PurchasePlan(ctx context.Context, userID int64, planID string) (*model.Transaction, error)
	NotifyPlan(planID string) error
}

// WithdrawalFacade provides withdrawal operations.
type WithdrawalFacade interface {
	QuoteWithdrawal(amount, currency string) (*usecase.WithdrawalQuote, error)
	SubmitWithdrawal(ctx context.Context, userID int64, amount, currency string, key uuid.UUID) (*model.Withdrawal, error)
	Withdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error)
}

// PayoutFacade manages payout profiles.
type PayoutFacade interface {
	SaveBankDetails(ctx context.Context, userID int64, bankName, accountName, accountNumber string) error
	SaveWallet(ctx context.Context, userID int64, network, walletAddress string) error
	PayoutMethod(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error)
}

// FeedFacade serves the transaction feed and its live stream.
type FeedFacade interface {
	Transactions(ctx context.Context, userID int64, filter model.TransactionType) ([]model.Transaction, error)
	ExportTransactionsCSV(ctx context.Context, userID int64, filter model.TransactionType) ([]byte, error)
	SubscribeFeed(ctx context.Context, userID int64) (*feed.Subscription, error)
}

// RateFacade serves exchange rate reference data.
type RateFacade interface {
	Rate(ctx context.Context, currency string) (*model.ExchangeRate, error)
}

// PlatformFacade aggregates the full set of operations used across handlers.
type PlatformFacade interface {
	AuthFacade
	PlanFacade
	WithdrawalFacade
	PayoutFacade
	FeedFacade
	RateFacade
}
