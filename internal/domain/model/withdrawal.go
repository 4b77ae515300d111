package model

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus describes payout lifecycle of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusQueued WithdrawalStatus = "queued"
)

// Withdrawal represents a withdrawal request with its fee breakdown.
// All amounts are minor units; NetCents is always GrossCents-FeeCents.
type Withdrawal struct {
	ID             int64
	UserID         int64
	GrossCents     int64
	FeeCents       int64
	NetCents       int64
	Currency       string
	Status         WithdrawalStatus
	IdempotencyKey uuid.UUID
	CreatedAt      time.Time
}
