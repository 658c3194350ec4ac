package controllers

import (
	"net/http"

	"quote-service/models"
	"quote-service/services"

	"github.com/gin-gonic/gin"
)

// FallbackMessage accompanies responses that carry the static fallback
// rates instead of computed ones.
const FallbackMessage = "Live rate calculation is temporarily unavailable; standard rates applied"

// QuoteController handles HTTP requests for shipping-rate quotes.
type QuoteController struct {
	quoteService services.QuoteService
}

// NewQuoteController creates a new QuoteController.
func NewQuoteController(svc services.QuoteService) *QuoteController {
	return &QuoteController{quoteService: svc}
}

// GetQuote handles POST /shipping/rates
//
// A body that cannot be decoded at all is the one case that earns a real
// 400 here; field-level problems come back typed from the service, and
// computation failures degrade to a 200 with fallback rates.
func (qc *QuoteController) GetQuote(ctx *gin.Context) {
	var req models.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Invalid request body",
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	result, svcErr := qc.quoteService.GetQuote(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, models.ErrorResponse{
			Error:   svcErr.Message,
			Code:    "VALIDATION_ERROR",
			Details: svcErr.Details,
		})
		return
	}

	resp := models.QuoteResponse{
		Weight:     result.Weight,
		WeightUnit: "oz",
		Rates:      result.Rates,
		Cached:     result.Cached,
		Fallback:   result.Degraded,
	}
	if result.Degraded {
		resp.Message = FallbackMessage
	}

	ctx.JSON(http.StatusOK, resp)
}
