package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/feed"
	"github.com/lunorise/platform/internal/usecase"
)

type RateProvider interface {
	Fetch(ctx context.Context, currency string) (*model.ExchangeRate, error)
}

type PlatformFacade struct {
	auth        *usecase.AuthUseCase
	withdrawals *usecase.WithdrawalUseCase
	payouts     *usecase.PayoutUseCase
	feed        *usecase.FeedUseCase
	plans       *usecase.PlanUseCase
	rates       *usecase.RatesUseCase
	hub         *feed.Hub
	provider    RateProvider
}

func NewPlatformFacade(
	auth *usecase.AuthUseCase,
	withdrawals *usecase.WithdrawalUseCase,
	payouts *usecase.PayoutUseCase,
	feedUC *usecase.FeedUseCase,
	plans *usecase.PlanUseCase,
	rates *usecase.RatesUseCase,
	hub *feed.Hub,
	provider RateProvider,
) *PlatformFacade {
	return &PlatformFacade{
		auth:        auth,
		withdrawals: withdrawals,
		payouts:     payouts,
		feed:        feedUC,
		plans:       plans,
		rates:       rates,
		hub:         hub,
		provider:    provider,
	}
}

func (f *PlatformFacade) Register(ctx context.Context, phone, country, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, phone, country, password)
	return token, err
}

func (f *PlatformFacade) Authenticate(ctx context.Context, phone, country, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, phone, country, password)
	return token, err
}

func (f *PlatformFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *PlatformFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *PlatformFacade) Plans() []model.Plan {
	return f.plans.List()
}

func (f *PlatformFacade) PurchasePlan(ctx context.Context, userID int64, planID string) (*model.Transaction, error) {
	tx, err := f.plans.Purchase(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	f.hub.Invalidate(ctx, userID)
	return tx, nil
}

func (f *PlatformFacade) NotifyPlan(planID string) error {
	return f.plans.Notify(planID)
}

func (f *PlatformFacade) QuoteWithdrawal(amount, currency string) (*usecase.WithdrawalQuote, error) {
	return f.withdrawals.Quote(amount, currency)
}

func (f *PlatformFacade) SubmitWithdrawal(ctx context.Context, userID int64, amount, currency string, key uuid.UUID) (*model.Withdrawal, error) {
	w, err := f.withdrawals.Submit(ctx, userID, amount, currency, key)
	if err != nil {
		return nil, err
	}
	f.hub.Invalidate(ctx, userID)
	return w, nil
}

func (f *PlatformFacade) Withdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	return f.withdrawals.History(ctx, userID)
}

func (f *PlatformFacade) SaveBankDetails(ctx context.Context, userID int64, bankName, accountName, accountNumber string) error {
	return f.payouts.SaveBankDetails(ctx, userID, bankName, accountName, accountNumber)
}

func (f *PlatformFacade) SaveWallet(ctx context.Context, userID int64, network, walletAddress string) error {
	return f.payouts.SaveWallet(ctx, userID, network, walletAddress)
}

func (f *PlatformFacade) PayoutMethod(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error) {
	return f.payouts.Get(ctx, userID, typ)
}

func (f *PlatformFacade) Transactions(ctx context.Context, userID int64, filter model.TransactionType) ([]model.Transaction, error) {
	return f.feed.List(ctx, userID, filter)
}

func (f *PlatformFacade) ExportTransactionsCSV(ctx context.Context, userID int64, filter model.TransactionType) ([]byte, error) {
	return f.feed.ExportCSV(ctx, userID, filter)
}

func (f *PlatformFacade) SubscribeFeed(ctx context.Context, userID int64) (*feed.Subscription, error) {
	return f.hub.Subscribe(ctx, userID)
}

func (f *PlatformFacade) Rate(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	return f.rates.Get(ctx, currency)
}

// RefreshRate pulls a fresh quote from the provider and stores it.
func (f *PlatformFacade) RefreshRate(ctx context.Context, currency string) error {
	rate, err := f.provider.Fetch(ctx, currency)
	if err != nil {
		return err
	}
	return f.rates.Store(ctx, rate.Currency, rate.Rate)
}
