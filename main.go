package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quote-service/cache"
	"quote-service/controllers"
	"quote-service/middleware"
	awspkg "quote-service/pkg/aws"
	"quote-service/rates"
	"quote-service/routes"
	servicepkg "quote-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// AWS clients
	awsCfg, awsErr := awspkg.LoadAWSConfig(context.Background())
	var snsClient awspkg.SNSPublisher
	if awsErr != nil {
		logger.Warn("AWS config unavailable, SNS disabled", zap.Error(awsErr))
	} else {
		snsClient = awspkg.NewSNSClient(awsCfg)
	}

	metricsClient, mErr := awspkg.NewMetricsClient(context.Background())
	if mErr != nil {
		logger.Warn("CloudWatch metrics unavailable", zap.Error(mErr))
		metricsClient = nil
	}

	// Cache, calculator, and DI chain
	quoteCache := cache.New(cfg.QuoteTTL, cfg.CacheMaxEntries)
	defer quoteCache.Close() //nolint:errcheck

	calculator := rates.NewTierCalculator()
	quoteService := servicepkg.NewQuoteService(
		quoteCache,
		calculator,
		snsClient,
		cfg.QuoteSNSTopicARN,
		metricsClient,
		logger,
	)
	quoteController := controllers.NewQuoteController(quoteService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware(metricsClient, "quote-service"))

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "quote-service"})
	})

	routes.RegisterQuoteRoutes(r, quoteController, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Quote service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down quote service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
