package model

import "time"

// PayoutMethodType distinguishes the stored payout profiles.
type PayoutMethodType string

const (
	PayoutMethodBank PayoutMethodType = "bank"
	PayoutMethodUSDT PayoutMethodType = "usdt"
)

// PayoutMethod holds payout destination details for a user.
// At most one record exists per (user, type) pair; only the fields
// relevant to the type are populated.
type PayoutMethod struct {
	ID     int64
	UserID int64
	Type   PayoutMethodType

	BankName      string
	AccountName   string
	AccountNumber string

	Network       string
	WalletAddress string

	UpdatedAt time.Time
}
