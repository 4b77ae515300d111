package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/pkg/money"
	"github.com/lunorise/platform/internal/server/http/dto"
)

// WithdrawalHandler manages withdrawal endpoints.
type WithdrawalHandler struct {
	facade WithdrawalFacade
}

// NewWithdrawalHandler constructs WithdrawalHandler.
func NewWithdrawalHandler(facade WithdrawalFacade) *WithdrawalHandler {
	return &WithdrawalHandler{facade: facade}
}

// Quote handles GET /api/user/withdrawals/quote.
func (h *WithdrawalHandler) Quote(c *gin.Context) {
	quote, err := h.facade.QuoteWithdrawal(c.Query("amount"), c.Query("currency"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAmount) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Gross:      quote.Gross.StringFixed(2),
		Fee:        quote.Fee.StringFixed(2),
		Net:        quote.Net.StringFixed(2),
		FeePercent: quote.Rail.FeePercent(),
	})
}

// Submit handles POST /api/user/withdrawals.
func (h *WithdrawalHandler) Submit(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	key := uuid.Nil
	if req.IdempotencyKey != "" {
		parsed, err := uuid.Parse(req.IdempotencyKey)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		key = parsed
	}

	w, err := h.facade.SubmitWithdrawal(c.Request.Context(), userID, req.Amount, req.Currency, key)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrBelowMinWithdrawal):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNoPayoutMethod):
			c.JSON(http.StatusPreconditionFailed, dto.ErrorResponse{Error: "add a payout method before withdrawing"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toWithdrawalResponse(*w))
}

// List handles GET /api/user/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	withdrawals, err := h.facade.Withdrawals(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(withdrawals) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		resp = append(resp, toWithdrawalResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}

func toWithdrawalResponse(w model.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:             w.ID,
		Gross:          money.FromMinorUnits(w.GrossCents).StringFixed(2),
		Fee:            money.FromMinorUnits(w.FeeCents).StringFixed(2),
		Net:            money.FromMinorUnits(w.NetCents).StringFixed(2),
		Currency:       w.Currency,
		Status:         string(w.Status),
		IdempotencyKey: w.IdempotencyKey.String(),
		CreatedAt:      w.CreatedAt,
	}
}
