package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/lunorise/platform/internal/domain/model"
)

// ErrUnknownCurrency indicates the provider does not quote the currency.
var ErrUnknownCurrency = errors.New("unknown currency")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the exchange rate provider.
type Client interface {
	Fetch(ctx context.Context, currency string) (*model.ExchangeRate, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the rate provider.
type response struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// NewHTTPClient creates HTTP rate client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rates url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rates url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the provider for the USD rate of the currency.
func (c *HTTPClient) Fetch(ctx context.Context, currency string) (*model.ExchangeRate, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/rates/", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		if data.Rate <= 0 {
			return nil, fmt.Errorf("provider returned non-positive rate %v for %s", data.Rate, currency)
		}
		return &model.ExchangeRate{Currency: data.Currency, Rate: data.Rate, UpdatedAt: time.Now()}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrUnknownCurrency
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("rates request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("rates error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
