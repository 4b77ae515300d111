package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
	pkgAuth "github.com/lunorise/platform/internal/pkg/auth"
)

// RegistrationBonusCents is credited to every new account.
const RegistrationBonusCents = 1000

// AuthUseCase handles phone-based user lifecycle and session tokens.
// Sign-in is layered over login/password identity storage through a
// pseudo-email synthesized from the phone number.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user with the registration bonus applied and
// returns a session token.
func (u *AuthUseCase) Register(ctx context.Context, phone, country, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	country = strings.TrimSpace(country)
	if phone == "" || country == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, phone, pkgAuth.PseudoEmail(phone), country, hash, RegistrationBonusCents)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials, enforces the country-match check
// against the registration data, and returns a session token. On
// country mismatch no session is issued.
func (u *AuthUseCase) Authenticate(ctx context.Context, phone, country, password string) (*model.User, string, error) {
	phone = strings.TrimSpace(phone)
	country = strings.TrimSpace(country)
	if phone == "" || country == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.LookupByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if !strings.EqualFold(usr.Country, country) {
		return nil, "", domainErrors.ErrCountryMismatch
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// LookupByPhone fetches user by phone number.
func (u *AuthUseCase) LookupByPhone(ctx context.Context, phone string) (*model.User, error) {
	return u.users.GetByPhone(ctx, strings.TrimSpace(phone))
}
