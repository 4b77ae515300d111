package test

import (
	"context"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, phone, login, country, passwordHash string, bonusCents int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[phone]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Phone:        phone,
		Login:        login,
		Country:      country,
		PasswordHash: passwordHash,
		BalanceCents: bonusCents,
	}
	s.Next++
	s.Users[phone] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByPhone fetches user by phone or returns not found.
func (s *UserRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[phone]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// WithdrawalRepositoryStub lets tests control withdrawal persistence.
type WithdrawalRepositoryStub struct {
	SubmitFn func(context.Context, *model.Withdrawal) (*model.Withdrawal, bool, error)
	ListFn   func(context.Context, int64) ([]model.Withdrawal, error)

	Submitted []model.Withdrawal
	Items     []model.Withdrawal
}

// Submit tracks invocations and returns configured responses.
func (s *WithdrawalRepositoryStub) Submit(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, bool, error) {
	s.Submitted = append(s.Submitted, *w)
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, w)
	}
	out := *w
	out.ID = int64(len(s.Submitted))
	return &out, true, nil
}

// ListByUser returns configured withdrawals.
func (s *WithdrawalRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return s.Items, nil
}

// PayoutMethodRepositoryStub stores payout profiles in-memory.
type PayoutMethodRepositoryStub struct {
	UpsertFn func(context.Context, *model.PayoutMethod) error
	GetFn    func(context.Context, int64, model.PayoutMethodType) (*model.PayoutMethod, error)

	Methods map[model.PayoutMethodType]*model.PayoutMethod
	Upserts int
}

// Upsert records the profile keyed by type.
func (s *PayoutMethodRepositoryStub) Upsert(ctx context.Context, m *model.PayoutMethod) error {
	s.Upserts++
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, m)
	}
	if s.Methods == nil {
		s.Methods = make(map[model.PayoutMethodType]*model.PayoutMethod)
	}
	s.Methods[m.Type] = m
	return nil
}

// Get returns the stored profile or not found.
func (s *PayoutMethodRepositoryStub) Get(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, typ)
	}
	if m, ok := s.Methods[typ]; ok {
		return m, nil
	}
	return nil, domainErrors.ErrNotFound
}

// TransactionRepositoryStub serves a fixed transaction feed.
type TransactionRepositoryStub struct {
	CreateFn func(context.Context, *model.Transaction) (*model.Transaction, error)
	ListFn   func(context.Context, int64) ([]model.Transaction, error)

	Created []model.Transaction
	Items   []model.Transaction
}

// Create tracks created transactions.
func (s *TransactionRepositoryStub) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	s.Created = append(s.Created, *t)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, t)
	}
	out := *t
	out.ID = int64(len(s.Created))
	return &out, nil
}

// ListByUser returns configured transactions.
func (s *TransactionRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return s.Items, nil
}

// RateRepositoryStub keeps exchange rates in a map.
type RateRepositoryStub struct {
	GetFn    func(context.Context, string) (*model.ExchangeRate, error)
	UpsertFn func(context.Context, string, float64) error

	Rates   map[string]float64
	Upserts int
}

// Get returns the configured rate or not found.
func (s *RateRepositoryStub) Get(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, currency)
	}
	if rate, ok := s.Rates[currency]; ok {
		return &model.ExchangeRate{Currency: currency, Rate: rate}, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert stores the rate.
func (s *RateRepositoryStub) Upsert(ctx context.Context, currency string, rate float64) error {
	s.Upserts++
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, currency, rate)
	}
	if s.Rates == nil {
		s.Rates = make(map[string]float64)
	}
	s.Rates[currency] = rate
	return nil
}
