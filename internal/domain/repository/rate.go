package repository

import (
	"context"

	"github.com/lunorise/platform/internal/domain/model"
)

// RateRepository stores exchange rate reference data.
type RateRepository interface {
	Get(ctx context.Context, currency string) (*model.ExchangeRate, error)
	Upsert(ctx context.Context, currency string, rate float64) error
}
