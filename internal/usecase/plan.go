package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/domain/repository"
	"github.com/lunorise/platform/internal/plans"
)

// PlanUseCase serves the plan catalog and handles purchases. A
// purchase records a pending deposit transaction; confirmation happens
// out of band when the payment settles.
type PlanUseCase struct {
	catalog      *plans.Catalog
	transactions repository.TransactionRepository
}

// NewPlanUseCase constructs PlanUseCase.
func NewPlanUseCase(catalog *plans.Catalog, transactions repository.TransactionRepository) *PlanUseCase {
	return &PlanUseCase{catalog: catalog, transactions: transactions}
}

// List returns the catalog ordered by sort order.
func (u *PlanUseCase) List() []model.Plan {
	return u.catalog.List()
}

// Purchase records a pending deposit for the plan. Locked plans
// cannot be bought.
func (u *PlanUseCase) Purchase(ctx context.Context, userID int64, planID string) (*model.Transaction, error) {
	plan, err := u.catalog.Get(planID)
	if err != nil {
		return nil, err
	}
	if plan.Locked {
		return nil, domainErrors.ErrPlanLocked
	}

	amount := plan.DepositCents
	return u.transactions.Create(ctx, &model.Transaction{
		UserID:         userID,
		Type:           model.TransactionTypeDeposit,
		AmountUSDCents: &amount,
		Status:         model.TransactionStatusPending,
		Note:           fmt.Sprintf("%s deposit", plan.Name),
	})
}

// Notify acknowledges interest in a plan. Only existence is checked;
// the notification itself is delivered by the marketing pipeline.
func (u *PlanUseCase) Notify(planID string) error {
	_, err := u.catalog.Get(planID)
	return err
}
