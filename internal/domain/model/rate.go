package model

import "time"

// ExchangeRate maps a currency code to its USD rate. Read-only
// reference data used for display conversion only.
type ExchangeRate struct {
	Currency  string
	Rate      float64
	UpdatedAt time.Time
}
