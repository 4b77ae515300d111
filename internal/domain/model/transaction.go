package model

import "time"

// TransactionType classifies feed entries.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeCrypto     TransactionType = "crypto"
)

// TransactionStatus describes settlement state of a feed entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusDeclined  TransactionStatus = "declined"
)

// Transaction is a heterogeneous feed record. Which amount fields are
// set depends on the type: deposits carry AmountUSDCents, withdrawals
// AmountCents, crypto payments CryptoAmount plus CryptoCurrency.
type Transaction struct {
	ID             int64
	UserID         int64
	Type           TransactionType
	AmountUSDCents *int64
	AmountCents    *int64
	CryptoAmount   *float64
	CryptoCurrency string
	Status         TransactionStatus
	Note           string
	CreatedAt      time.Time
}
