package repository

import (
	"context"

	"github.com/lunorise/platform/internal/domain/model"
)

// TransactionRepository provides access to the transaction feed.
// ListByUser returns entries ordered by creation time descending.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
}
