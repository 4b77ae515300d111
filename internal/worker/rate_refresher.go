package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lunorise/platform/internal/adapter/rates"
)

// RateFacade exposes the subset of application functionality required by the worker.
type RateFacade interface {
	RefreshRate(ctx context.Context, currency string) error
}

// RateRefresher polls the exchange rate provider for the configured
// currencies and stores fresh quotes concurrently.
type RateRefresher struct {
	facade       RateFacade
	currencies   []string
	pollInterval time.Duration
	workers      int
	logger       *slog.Logger

	jobs   chan string
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRateRefresher constructs rate refresher worker pool.
func NewRateRefresher(facade RateFacade, currencies []string, pollInterval time.Duration, workers int, logger *slog.Logger) *RateRefresher {
	if workers <= 0 {
		workers = 1
	}
	if len(currencies) == 0 {
		currencies = []string{"NGN"}
	}
	return &RateRefresher{
		facade:       facade,
		currencies:   currencies,
		pollInterval: pollInterval,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan string, len(currencies)*workers),
	}
}

// Start launches background refreshing. The first refresh happens
// immediately so rates are available before the first tick.
func (p *RateRefresher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *RateRefresher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *RateRefresher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	p.enqueueAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.enqueueAll(ctx)
		}
	}
}

func (p *RateRefresher) enqueueAll(ctx context.Context) {
	for _, currency := range p.currencies {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- currency:
		}
	}
}

func (p *RateRefresher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case currency, ok := <-p.jobs:
			if !ok {
				return
			}
			p.refresh(ctx, currency)
		}
	}
}

func (p *RateRefresher) refresh(ctx context.Context, currency string) {
	err := p.facade.RefreshRate(ctx, currency)
	if err == nil {
		return
	}

	var tm rates.TooManyRequestsError
	switch {
	case errors.As(err, &tm):
		p.logger.Warn("rate provider limited", slog.Duration("retry_after", tm.RetryAfter))
		time.Sleep(tm.RetryAfter)
	case errors.Is(err, rates.ErrUnknownCurrency):
		p.logger.Warn("currency not quoted by provider", slog.String("currency", currency))
	default:
		p.logger.Error("rate refresh failed", slog.String("currency", currency), slog.String("error", err.Error()))
	}
}
