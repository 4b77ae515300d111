package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
)

// RatesUseCase serves exchange rate reference data.
type RatesUseCase struct {
	rates repository.RateRepository
}

// NewRatesUseCase constructs RatesUseCase.
func NewRatesUseCase(rates repository.RateRepository) *RatesUseCase {
	return &RatesUseCase{rates: rates}
}

// Get returns the stored rate for the currency code.
func (u *RatesUseCase) Get(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.rates.Get(ctx, currency)
}

// Store upserts a refreshed rate.
func (u *RatesUseCase) Store(ctx context.Context, currency string, rate float64) error {
	if rate <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.rates.Upsert(ctx, strings.ToUpper(strings.TrimSpace(currency)), rate)
}
