package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"quote-service/cache"
	"quote-service/models"
	awspkg "quote-service/pkg/aws"
	"quote-service/rates"
	"quote-service/validation"

	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
	Details    *models.ValidationDetails
}

func (e *ServiceError) Error() string { return e.Message }

// QuoteResult is the two-tier outcome of a quote request: a normal result
// (possibly served from cache) or a degraded one carrying the fallback
// offer set and the reason computation was unavailable. Degraded results
// are still a success from the caller's point of view.
type QuoteResult struct {
	Weight   float64
	Rates    []models.CarrierOffer
	Cached   bool
	Degraded bool
	Reason   string
}

// QuoteService defines the business logic interface.
type QuoteService interface {
	GetQuote(ctx context.Context, req *models.QuoteRequest) (*QuoteResult, *ServiceError)
}

type quoteServiceImpl struct {
	cache       *cache.QuoteCache
	calculator  rates.Calculator
	snsClient   awspkg.SNSPublisher
	snsTopicArn string
	metrics     *awspkg.MetricsClient
	logger      *zap.Logger
}

// NewQuoteService creates a new QuoteService. snsClient and metrics may be
// nil; the degraded path then only logs.
func NewQuoteService(
	quoteCache *cache.QuoteCache,
	calculator rates.Calculator,
	snsClient awspkg.SNSPublisher,
	snsTopicArn string,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) QuoteService {
	return &quoteServiceImpl{
		cache:       quoteCache,
		calculator:  calculator,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetQuote validates the request, serves from cache when possible, and
// otherwise computes, sorts, and caches a fresh offer list. A failing
// calculator degrades to the fallback offer set instead of erroring;
// validation failures are the only error this method returns.
func (s *quoteServiceImpl) GetQuote(ctx context.Context, req *models.QuoteRequest) (*QuoteResult, *ServiceError) {
	norm, vErr := validation.Validate(req.Weight, req.State, req.PostalCode)
	if vErr != nil {
		details := &models.ValidationDetails{Field: vErr.Field, Value: vErr.Value}
		if vErr.Kind == validation.KindWeightTooHigh {
			details.MaxWeight = validation.MaxWeightOz
		}
		return nil, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    vErr.Message,
			Details:    details,
		}
	}

	key := cache.Key(norm.WeightOz, norm.State, norm.PostalCode)
	if offers, ok := s.cache.Get(key); ok {
		s.recordCount(awspkg.MetricQuoteCacheHits)
		return &QuoteResult{Weight: norm.WeightOz, Rates: offers, Cached: true}, nil
	}
	s.recordCount(awspkg.MetricQuoteCacheMisses)

	offers, calcErr := s.safeCalculate(norm.WeightOz)
	if calcErr != nil {
		s.logger.Error("rate calculation failed, serving fallback rates",
			zap.Float64("weight_oz", norm.WeightOz),
			zap.Error(calcErr),
		)
		s.recordCount(awspkg.MetricQuotesDegraded)
		s.publishDegraded(ctx, norm.WeightOz, calcErr.Error())

		// Fallback rates are not weight-specific, so they never enter the cache.
		return &QuoteResult{
			Weight:   norm.WeightOz,
			Rates:    rates.FallbackOffers(),
			Degraded: true,
			Reason:   calcErr.Error(),
		}, nil
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})

	s.cache.Put(key, offers)
	s.recordCount(awspkg.MetricQuotesComputed)

	return &QuoteResult{Weight: norm.WeightOz, Rates: offers}, nil
}

// safeCalculate shields the request path from a panicking Calculator
// implementation so the caller can degrade instead of crash.
func (s *quoteServiceImpl) safeCalculate(weightOz float64) (offers []models.CarrierOffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			offers = nil
			err = fmt.Errorf("rate calculator panic: %v", r)
		}
	}()
	return s.calculator.Calculate(weightOz), nil
}

// publishDegraded emits a quote_degraded SNS event (non-fatal on error).
func (s *quoteServiceImpl) publishDegraded(ctx context.Context, weightOz float64, reason string) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}
	event := models.QuoteDegradedEvent{
		EventType: "quote_degraded",
		Weight:    weightOz,
		Reason:    reason,
		Timestamp: time.Now(),
	}
	b, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal SNS event", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, b); err != nil {
		s.logger.Error("Failed to publish SNS event", zap.Error(err))
		return
	}
	s.logger.Info("Published SNS event", zap.String("topic", s.snsTopicArn))
}

func (s *quoteServiceImpl) recordCount(metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.metrics.RecordCount(ctx, metric, map[string]string{"Service": "quote-service"})
	}()
}
