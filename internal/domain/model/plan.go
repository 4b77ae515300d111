package model

import "math"

// Plan describes an investment tier. Amounts are minor units. Locked
// plans are visible in the catalog but cannot be purchased yet.
type Plan struct {
	ID                  string
	Name                string
	DepositCents        int64
	PayoutPerCycleCents int64
	CycleCount          int
	TotalReturnCents    int64
	Locked              bool
	SortOrder           int
}

// ReturnPercent computes the advertised total return percentage.
func (p Plan) ReturnPercent() int {
	if p.DepositCents == 0 {
		return 0
	}
	ratio := float64(p.TotalReturnCents-p.DepositCents) / float64(p.DepositCents)
	return int(math.Round(ratio * 100))
}
