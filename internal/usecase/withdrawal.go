package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
	"github.com/lunorise/platform/internal/pkg/money"
)

// WithdrawalQuote is the fee breakdown shown before submission.
// Amounts are unrounded USD values.
type WithdrawalQuote struct {
	Gross decimal.Decimal
	Fee   decimal.Decimal
	Net   decimal.Decimal
	Rail  money.Rail
}

// WithdrawalUseCase validates and submits withdrawal requests.
type WithdrawalUseCase struct {
	users       repository.UserRepository
	withdrawals repository.WithdrawalRepository
	payouts     repository.PayoutMethodRepository
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(users repository.UserRepository, withdrawals repository.WithdrawalRepository, payouts repository.PayoutMethodRepository) *WithdrawalUseCase {
	return &WithdrawalUseCase{users: users, withdrawals: withdrawals, payouts: payouts}
}

// Quote parses the amount and computes the fee breakdown for the
// currency's rail without touching storage.
func (u *WithdrawalUseCase) Quote(amount, currency string) (*WithdrawalQuote, error) {
	gross, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || gross.LessThanOrEqual(decimal.Zero) {
		return nil, domainErrors.ErrInvalidAmount
	}

	rail := money.RailForCurrency(currency)
	return &WithdrawalQuote{
		Gross: gross,
		Fee:   money.Fee(gross, rail),
		Net:   money.Net(gross, rail),
		Rail:  rail,
	}, nil
}

// Submit runs the validation chain and, only after every check passes,
// reserves funds and records the request in a single storage
// transaction. Checks short-circuit in order: parseable positive
// amount, minimum, available balance, payout method on file. The fee
// is recomputed here from gross and rail; nothing client-supplied is
// trusted.
func (u *WithdrawalUseCase) Submit(ctx context.Context, userID int64, amount, currency string, key uuid.UUID) (*model.Withdrawal, error) {
	quote, err := u.Quote(amount, currency)
	if err != nil {
		return nil, err
	}

	if quote.Gross.LessThan(money.MinWithdrawal) {
		return nil, fmt.Errorf("%w: minimum is %s", domainErrors.ErrBelowMinWithdrawal, money.FormatUSD(money.MinorUnits(money.MinWithdrawal)))
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if quote.Gross.GreaterThan(money.FromMinorUnits(usr.BalanceCents)) {
		return nil, fmt.Errorf("%w: available %s", domainErrors.ErrInsufficientFunds, money.FormatUSD(usr.BalanceCents))
	}

	if _, err := u.payouts.Get(ctx, userID, quote.Rail.PayoutMethodType()); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNoPayoutMethod
		}
		return nil, err
	}

	grossCents := money.MinorUnits(quote.Gross)
	feeCents := money.MinorUnits(quote.Fee)

	if key == uuid.Nil {
		key = uuid.New()
	}

	w := &model.Withdrawal{
		UserID:         userID,
		GrossCents:     grossCents,
		FeeCents:       feeCents,
		NetCents:       grossCents - feeCents,
		Currency:       strings.ToUpper(strings.TrimSpace(currency)),
		Status:         model.WithdrawalStatusQueued,
		IdempotencyKey: key,
	}

	out, _, err := u.withdrawals.Submit(ctx, w)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History returns withdrawals sorted by time, newest first.
func (u *WithdrawalUseCase) History(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	return u.withdrawals.ListByUser(ctx, userID)
}
