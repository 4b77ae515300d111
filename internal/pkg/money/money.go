package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lunorise/platform/internal/domain/model"
)

// Rail is the payout channel a withdrawal settles on. It determines
// both the fee percentage and the payout method type required.
type Rail string

const (
	RailUSD Rail = "usd"
	RailNGN Rail = "ngn"
)

var (
	feeUSD = decimal.New(8, -2)  // 8% on the USD/crypto rail
	feeNGN = decimal.New(15, -2) // 15% on the Naira rail

	hundred = decimal.NewFromInt(100)

	// MinWithdrawal is the smallest accepted gross amount in USD.
	MinWithdrawal = decimal.NewFromInt(2)
)

// RailForCurrency maps a withdrawal currency code to its rail. USD
// settles on the crypto rail, every other currency on the Naira rail.
func RailForCurrency(code string) Rail {
	if strings.EqualFold(code, "USD") {
		return RailUSD
	}
	return RailNGN
}

// PayoutMethodType returns the payout profile type the rail pays into.
func (r Rail) PayoutMethodType() model.PayoutMethodType {
	if r == RailUSD {
		return model.PayoutMethodUSDT
	}
	return model.PayoutMethodBank
}

// FeePercent returns the fee percentage applied on the rail.
func (r Rail) FeePercent() int64 {
	if r == RailUSD {
		return 8
	}
	return 15
}

// Fee computes the withdrawal fee on gross without rounding.
func Fee(gross decimal.Decimal, rail Rail) decimal.Decimal {
	if rail == RailUSD {
		return gross.Mul(feeUSD)
	}
	return gross.Mul(feeNGN)
}

// Net returns gross minus the rail fee, unrounded.
func Net(gross decimal.Decimal, rail Rail) decimal.Decimal {
	return gross.Sub(Fee(gross, rail))
}

// MinorUnits converts a USD amount to integer cents, rounding half up.
// Gross and fee are converted independently at submission time; the
// persisted net is gross cents minus fee cents, which can differ from
// rounding the net amount directly by one unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts integer cents back to a USD amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// LocalAmount converts a USD amount using an exchange rate. Display
// only, never persisted.
func LocalAmount(usd decimal.Decimal, rate float64) decimal.Decimal {
	return usd.Mul(decimal.NewFromFloat(rate))
}

// FormatUSD renders cents as a dollar string, e.g. 500 -> "$5.00".
func FormatUSD(cents int64) string {
	return fmt.Sprintf("$%s", FromMinorUnits(cents).StringFixed(2))
}
