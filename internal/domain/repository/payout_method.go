package repository

import (
	"context"

	"github.com/lunorise/platform/internal/domain/model"
)

// PayoutMethodRepository stores payout profiles keyed by (user, type).
type PayoutMethodRepository interface {
	Upsert(ctx context.Context, method *model.PayoutMethod) error
	Get(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error)
}
