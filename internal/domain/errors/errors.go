package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCountryMismatch    = errors.New("country does not match registration")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrBelowMinWithdrawal = errors.New("below minimum withdrawal")
	ErrNoPayoutMethod     = errors.New("no payout method on file")
	ErrMissingField       = errors.New("missing required field")
	ErrPlanLocked         = errors.New("plan is not yet available")
	ErrUnknownPlan        = errors.New("unknown plan")
	ErrNothingToExport    = errors.New("no transactions to export")
)
