package dto

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

// LoginRequest describes the sign-in payload. Country must match the
// one stored at registration.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Password string `json:"password"`
}

// BalanceResponse represents the available balance in whole dollars.
type BalanceResponse struct {
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}
