package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Withdrawals() WithdrawalRepository
	PayoutMethods() PayoutMethodRepository
	Transactions() TransactionRepository
	Rates() RateRepository
}
