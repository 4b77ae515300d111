package repository

import (
	"context"

	"github.com/lunorise/platform/internal/domain/model"
)

// WithdrawalRepository persists withdrawal requests. Submit reserves
// the gross amount against the user's balance and records the request
// in a single transaction; resubmission with the same idempotency key
// returns the already stored withdrawal with created=false and does
// not reserve again.
type WithdrawalRepository interface {
	Submit(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Withdrawal, error)
}
