package middleware

import (
	"net/http"

	"quote-service/models"
	"quote-service/rates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteFallback converts any panic escaping the quote pipeline into a 200
// response carrying the static fallback rates. Rate display sits on a
// checkout-adjacent path, so a stale fallback price beats a 5xx.
func QuoteFallback(logger *zap.Logger, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in quote pipeline, serving fallback rates",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusOK, models.QuoteResponse{
					WeightUnit: "oz",
					Rates:      rates.FallbackOffers(),
					Fallback:   true,
					Message:    message,
				})
			}
		}()
		c.Next()
	}
}
