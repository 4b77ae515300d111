package dto

import "time"

// TransactionResponse describes a feed entry. Exactly one of the
// amount fields is populated depending on the transaction type.
type TransactionResponse struct {
	ID             int64     `json:"id"`
	Type           string    `json:"type"`
	AmountUSD      *string   `json:"amount_usd,omitempty"`
	Amount         *string   `json:"amount,omitempty"`
	CryptoAmount   *float64  `json:"crypto_amount,omitempty"`
	CryptoCurrency string    `json:"crypto_currency,omitempty"`
	Status         string    `json:"status"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlanResponse describes an investment tier in the public catalog.
type PlanResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Deposit        string `json:"deposit"`
	PayoutPerCycle string `json:"payout_per_cycle"`
	CycleCount     int    `json:"cycle_count"`
	TotalReturn    string `json:"total_return"`
	ReturnPercent  int    `json:"return_percent"`
	Locked         bool   `json:"locked"`
}

// RateResponse describes a stored exchange rate.
type RateResponse struct {
	Currency  string  `json:"currency"`
	Rate      float64 `json:"rate"`
	UpdatedAt string  `json:"updated_at"`
}
