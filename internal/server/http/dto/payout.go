package dto

// PayoutMethodRequest carries payout profile details. Type selects
// which field group is required: bank details for "bank", wallet
// address (plus optional network) for "usdt".
type PayoutMethodRequest struct {
	Type          string `json:"type"`
	BankName      string `json:"bank_name,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Network       string `json:"network,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

// PayoutMethodResponse mirrors the stored payout profile.
type PayoutMethodResponse struct {
	Type          string `json:"type"`
	BankName      string `json:"bank_name,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Network       string `json:"network,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}
