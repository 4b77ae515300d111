package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/pkg/money"
	"github.com/lunorise/platform/internal/server/http/dto"
)

// PlanHandler serves the investment plan catalog.
type PlanHandler struct {
	facade PlanFacade
}

// NewPlanHandler constructs PlanHandler.
func NewPlanHandler(facade PlanFacade) *PlanHandler {
	return &PlanHandler{facade: facade}
}

// List handles GET /api/user/plans.
func (h *PlanHandler) List(c *gin.Context) {
	plans := h.facade.Plans()
	resp := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Purchase handles POST /api/user/plans/:id/purchase.
func (h *PlanHandler) Purchase(c *gin.Context) {
	userID := CurrentUserID(c)
	tx, err := h.facade.PurchasePlan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownPlan):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrPlanLocked):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "plan is not open for purchase yet"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toTransactionResponse(*tx))
}

// Notify handles POST /api/user/plans/:id/notify.
func (h *PlanHandler) Notify(c *gin.Context) {
	if err := h.facade.NotifyPlan(c.Param("id")); err != nil {
		if errors.Is(err, domainErrors.ErrUnknownPlan) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusAccepted)
}

func toPlanResponse(p model.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Deposit:        money.FromMinorUnits(p.DepositCents).StringFixed(2),
		PayoutPerCycle: money.FromMinorUnits(p.PayoutPerCycleCents).StringFixed(2),
		CycleCount:     p.CycleCount,
		TotalReturn:    money.FromMinorUnits(p.TotalReturnCents).StringFixed(2),
		ReturnPercent:  p.ReturnPercent(),
		Locked:         p.Locked,
	}
}
