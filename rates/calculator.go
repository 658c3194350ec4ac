package rates

import (
	"math"

	"quote-service/models"
)

// Calculator produces carrier offers for a validated weight. Implementations
// must be deterministic and side-effect free; the list comes back unsorted.
type Calculator interface {
	Calculate(weightOz float64) []models.CarrierOffer
}

// TierCalculator prices the four supported service classes from fixed
// weight-tier tables. It performs no I/O and never varies by destination.
type TierCalculator struct{}

// NewTierCalculator creates a new TierCalculator.
func NewTierCalculator() *TierCalculator {
	return &TierCalculator{}
}

// Calculate returns 2-4 offers for the given weight in ounces. The weight is
// clamped into [0.1, 1600] even though validation already enforces the
// ceiling, so an upstream inconsistency can never crash pricing.
func (c *TierCalculator) Calculate(weightOz float64) []models.CarrierOffer {
	oz := clamp(weightOz, 0.1, 1600)
	lb := oz / 16

	offers := make([]models.CarrierOffer, 0, 4)

	// First Class is only available under 1 lb.
	if oz <= 16 {
		offers = append(offers, models.CarrierOffer{
			ID:            "usps-first-class",
			Name:          "USPS First Class",
			Carrier:       "USPS",
			Service:       "First Class",
			Price:         firstClassPrice(oz),
			EstimatedDays: "3-5 business days",
		})
	}

	priority := priorityPrice(lb)
	offers = append(offers, models.CarrierOffer{
		ID:            "usps-priority",
		Name:          "USPS Priority Mail",
		Carrier:       "USPS",
		Service:       "Priority Mail",
		Price:         priority,
		EstimatedDays: "2-3 business days",
	})

	offers = append(offers, models.CarrierOffer{
		ID:            "usps-priority-express",
		Name:          "USPS Priority Mail Express",
		Carrier:       "USPS",
		Service:       "Priority Mail Express",
		Price:         round2(priority * 1.8),
		EstimatedDays: "1-2 business days",
	})

	// UPS Ground starts at 2 lb.
	if lb >= 2 {
		offers = append(offers, models.CarrierOffer{
			ID:            "ups-ground",
			Name:          "UPS Ground",
			Carrier:       "UPS",
			Service:       "Ground",
			Price:         upsGroundPrice(lb),
			EstimatedDays: "3-5 business days",
		})
	}

	return offers
}

func firstClassPrice(oz float64) float64 {
	switch {
	case oz <= 4:
		return 7.98
	case oz <= 8:
		return 9.00
	default:
		return 11.00
	}
}

func priorityPrice(lb float64) float64 {
	switch {
	case lb <= 1:
		return 18.00
	case lb <= 2:
		return 22.00
	case lb <= 3:
		return 26.00
	case lb <= 5:
		return 32.00
	case lb <= 10:
		return 40.00
	default:
		// Every additional 5 lb past 10 adds a flat $10.
		return 50.00 + math.Floor((lb-10)/5)*10.00
	}
}

func upsGroundPrice(lb float64) float64 {
	switch {
	case lb <= 3:
		return 24.00
	case lb <= 5:
		return 30.00
	case lb <= 10:
		return 44.00
	default:
		return 56.00 + math.Floor((lb-10)/5)*12.00
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
