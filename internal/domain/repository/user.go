package repository

import (
	"context"

	"github.com/lunorise/platform/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, phone, login, country, passwordHash string, bonusCents int64) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
