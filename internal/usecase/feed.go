package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
	"github.com/lunorise/platform/internal/pkg/money"
)

var csvHeader = []string{"Date", "Type", "Amount", "Status", "Note"}

// FeedUseCase reads the transaction feed. Entries come back from
// storage newest first; the type filter is applied in memory.
type FeedUseCase struct {
	transactions repository.TransactionRepository
}

// NewFeedUseCase constructs FeedUseCase.
func NewFeedUseCase(transactions repository.TransactionRepository) *FeedUseCase {
	return &FeedUseCase{transactions: transactions}
}

// List returns the user's transactions, optionally filtered by type.
// An empty filter returns everything.
func (u *FeedUseCase) List(ctx context.Context, userID int64, filter model.TransactionType) ([]model.Transaction, error) {
	txs, err := u.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return txs, nil
	}

	filtered := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Type == filter {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ExportCSV renders the filtered feed as CSV. An empty result set is
// an error: no file is produced for it.
func (u *FeedUseCase) ExportCSV(ctx context.Context, userID int64, filter model.TransactionType) ([]byte, error) {
	txs, err := u.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, domainErrors.ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range txs {
		record := []string{
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			string(t.Type),
			csvAmount(t),
			string(t.Status),
			t.Note,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvAmount falls back through the heterogeneous amount fields:
// amount_usd, then amount, then crypto amount with currency, then "-".
func csvAmount(t model.Transaction) string {
	switch {
	case t.AmountUSDCents != nil:
		return money.FromMinorUnits(*t.AmountUSDCents).StringFixed(2)
	case t.AmountCents != nil:
		return money.FromMinorUnits(*t.AmountCents).StringFixed(2)
	case t.CryptoAmount != nil:
		return fmt.Sprintf("%s %s", strconv.FormatFloat(*t.CryptoAmount, 'f', -1, 64), t.CryptoCurrency)
	default:
		return "-"
	}
}
