package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/domain/model"
	"github.com/lunorise/platform/internal/pkg/money"
	"github.com/lunorise/platform/internal/server/http/dto"
)

// TransactionHandler serves the transaction feed, its CSV export, and
// the live SSE stream.
type TransactionHandler struct {
	facade FeedFacade
}

// NewTransactionHandler constructs TransactionHandler.
func NewTransactionHandler(facade FeedFacade) *TransactionHandler {
	return &TransactionHandler{facade: facade}
}

func feedFilter(c *gin.Context) (model.TransactionType, bool) {
	switch filter := model.TransactionType(c.Query("type")); filter {
	case "", model.TransactionTypeDeposit, model.TransactionTypeWithdrawal, model.TransactionTypeCrypto:
		return filter, true
	default:
		return "", false
	}
}

// List handles GET /api/user/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	filter, ok := feedFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown transaction type"})
		return
	}

	txs, err := h.facade.Transactions(c.Request.Context(), userID, filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(txs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, toTransactionResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles GET /api/user/transactions/export.
func (h *TransactionHandler) Export(c *gin.Context) {
	userID := CurrentUserID(c)
	filter, ok := feedFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown transaction type"})
		return
	}

	data, err := h.facade.ExportTransactionsCSV(c.Request.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNothingToExport) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// Stream handles GET /api/user/transactions/stream. Snapshots of the
// feed are pushed as SSE events until the client disconnects.
func (h *TransactionHandler) Stream(c *gin.Context) {
	userID := CurrentUserID(c)

	sub, err := h.facade.SubscribeFeed(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	defer sub.Unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return false
			}
			resp := make([]dto.TransactionResponse, 0, len(snapshot))
			for _, t := range snapshot {
				resp = append(resp, toTransactionResponse(t))
			}
			c.SSEvent("feed", resp)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func toTransactionResponse(t model.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:             t.ID,
		Type:           string(t.Type),
		CryptoAmount:   t.CryptoAmount,
		CryptoCurrency: t.CryptoCurrency,
		Status:         string(t.Status),
		Note:           t.Note,
		CreatedAt:      t.CreatedAt,
	}
	if t.AmountUSDCents != nil {
		v := money.FromMinorUnits(*t.AmountUSDCents).StringFixed(2)
		resp.AmountUSD = &v
	}
	if t.AmountCents != nil {
		v := money.FromMinorUnits(*t.AmountCents).StringFixed(2)
		resp.Amount = &v
	}
	return resp
}
