package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
)

// DefaultUSDTNetwork is assumed when the wallet form omits a network.
const DefaultUSDTNetwork = "BEP20"

// PayoutUseCase manages payout profiles, one bank and one wallet per user.
type PayoutUseCase struct {
	methods repository.PayoutMethodRepository
}

// NewPayoutUseCase constructs PayoutUseCase.
func NewPayoutUseCase(methods repository.PayoutMethodRepository) *PayoutUseCase {
	return &PayoutUseCase{methods: methods}
}

// SaveBankDetails validates and upserts the bank profile.
func (u *PayoutUseCase) SaveBankDetails(ctx context.Context, userID int64, bankName, accountName, accountNumber string) error {
	bankName = strings.TrimSpace(bankName)
	accountName = strings.TrimSpace(accountName)
	accountNumber = strings.TrimSpace(accountNumber)
	if bankName == "" || accountName == "" || accountNumber == "" {
		return fmt.Errorf("%w: all bank details are required", domainErrors.ErrMissingField)
	}

	return u.methods.Upsert(ctx, &model.PayoutMethod{
		UserID:        userID,
		Type:          model.PayoutMethodBank,
		BankName:      bankName,
		AccountName:   accountName,
		AccountNumber: accountNumber,
	})
}

// SaveWallet validates and upserts the USDT wallet profile.
func (u *PayoutUseCase) SaveWallet(ctx context.Context, userID int64, network, walletAddress string) error {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return fmt.Errorf("%w: wallet address is required", domainErrors.ErrMissingField)
	}

	network = strings.TrimSpace(network)
	if network == "" {
		network = DefaultUSDTNetwork
	}

	return u.methods.Upsert(ctx, &model.PayoutMethod{
		UserID:        userID,
		Type:          model.PayoutMethodUSDT,
		Network:       network,
		WalletAddress: walletAddress,
	})
}

// Get fetches the payout profile of the given type.
func (u *PayoutUseCase) Get(ctx context.Context, userID int64, typ model.PayoutMethodType) (*model.PayoutMethod, error) {
	return u.methods.Get(ctx, userID, typ)
}
