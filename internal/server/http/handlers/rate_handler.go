package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lunorise/platform/internal/domain/errors"
	"github.com/lunorise/platform/internal/server/http/dto"
)

// RateHandler serves stored exchange rates.
type RateHandler struct {
	facade RateFacade
}

// NewRateHandler constructs RateHandler.
func NewRateHandler(facade RateFacade) *RateHandler {
	return &RateHandler{facade: facade}
}

// Get handles GET /api/rates/:currency.
func (h *RateHandler) Get(c *gin.Context) {
	rate, err := h.facade.Rate(c.Request.Context(), c.Param("currency"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.RateResponse{
		Currency:  rate.Currency,
		Rate:      rate.Rate,
		UpdatedAt: rate.UpdatedAt.Format(time.RFC3339),
	})
}
