package test

import (
	"context"
	"sync"

	"github.com/lunorise/platform/internal/domain/model"
)

// RateFacadeStub records refresh calls for worker tests.
type RateFacadeStub struct {
	sync.Mutex

	RefreshFn func(ctx context.Context, currency string) error
	Refreshed []string
}

// RefreshRate tracks the currency and delegates to RefreshFn when set.
func (s *RateFacadeStub) RefreshRate(ctx context.Context, currency string) error {
	s.Lock()
	s.Refreshed = append(s.Refreshed, currency)
	s.Unlock()
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, currency)
	}
	return nil
}

// RateProviderStub fetches exchange rates for tests.
type RateProviderStub struct {
	FetchFn func(context.Context, string) (*model.ExchangeRate, error)
	Rate    *model.ExchangeRate
	Err     error
}

// Fetch returns configured response or a default quote.
func (s RateProviderStub) Fetch(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, currency)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Rate != nil {
		return s.Rate, nil
	}
	return &model.ExchangeRate{Currency: currency, Rate: 1500}, nil
}

