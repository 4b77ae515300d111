package dto

import "time"

// WithdrawRequest describes withdrawal submission payload. Amount is a
// decimal string in USD; IdempotencyKey is optional and generated
// server-side when absent.
type WithdrawRequest struct {
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// QuoteResponse is the fee breakdown preview for a prospective
// withdrawal.
type QuoteResponse struct {
	Gross      string `json:"gross"`
	Fee        string `json:"fee"`
	Net        string `json:"net"`
	FeePercent int64  `json:"fee_percent"`
}

// WithdrawalResponse describes a withdrawal history entry.
type WithdrawalResponse struct {
	ID             int64     `json:"id"`
	Gross          string    `json:"gross"`
	Fee            string    `json:"fee"`
	Net            string    `json:"net"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
}

// ErrorResponse carries a human readable failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
