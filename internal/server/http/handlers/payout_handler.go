package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/server/http/dto"
)

// PayoutHandler manages payout profile endpoints.
type PayoutHandler struct {
	facade PayoutFacade
}

// NewPayoutHandler constructs PayoutHandler.
func NewPayoutHandler(facade PayoutFacade) *PayoutHandler {
	return &PayoutHandler{facade: facade}
}

// Save handles POST /api/user/payout-methods.
func (h *PayoutHandler) Save(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.PayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var err error
	switch model.PayoutMethodType(req.Type) {
	case model.PayoutMethodBank:
		err = h.facade.SaveBankDetails(c.Request.Context(), userID, req.BankName, req.AccountName, req.AccountNumber)
	case model.PayoutMethodUSDT:
		err = h.facade.SaveWallet(c.Request.Context(), userID, req.Network, req.WalletAddress)
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown payout method type"})
		return
	}

	if err != nil {
		if errors.Is(err, domainErrors.ErrMissingField) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// Get handles GET /api/user/payout-methods.
func (h *PayoutHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)

	typ := model.PayoutMethodType(c.Query("type"))
	if typ != model.PayoutMethodBank && typ != model.PayoutMethodUSDT {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown payout method type"})
		return
	}

	method, err := h.facade.PayoutMethod(c.Request.Context(), userID, typ)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PayoutMethodResponse{
		Type:          string(method.Type),
		BankName:      method.BankName,
		AccountName:   method.AccountName,
		AccountNumber: method.AccountNumber,
		Network:       method.Network,
		WalletAddress: method.WalletAddress,
	})
}
