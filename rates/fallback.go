package rates

import "quote-service/models"

// FallbackOffers returns the static offer pair served when normal rate
// computation is unavailable. Fallback offers are never cached and carry
// their own ids so they cannot be mistaken for computed rates.
func FallbackOffers() []models.CarrierOffer {
	return []models.CarrierOffer{
		{
			ID:            "fallback-standard",
			Name:          "Standard Shipping",
			Carrier:       "USPS",
			Service:       "Standard",
			Price:         9.99,
			EstimatedDays: "5-7 business days",
		},
		{
			ID:            "fallback-priority",
			Name:          "Priority Shipping",
			Carrier:       "USPS",
			Service:       "Priority",
			Price:         14.99,
			EstimatedDays: "2-3 business days",
		},
	}
}
