package routes

import (
	"quote-service/controllers"
	"quote-service/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterQuoteRoutes sets up all quote-related routes.
func RegisterQuoteRoutes(r *gin.Engine, qc *controllers.QuoteController, logger *zap.Logger) {
	shipping := r.Group("/shipping")

	// Outermost boundary: a panic anywhere below degrades to fallback rates.
	shipping.Use(middleware.QuoteFallback(logger, controllers.FallbackMessage))

	shipping.POST("/rates", qc.GetQuote)
}
