package models

import "time"

// QuoteRequest is the payload for calculating shipping-rate quotes.
//
// Weight is deliberately untyped: callers sometimes send it as a string,
// and we want a field-scoped validation error for `"weight": "abc"` instead
// of a generic body-decoding failure.
type QuoteRequest struct {
	Weight     interface{} `json:"weight"`
	State      string      `json:"state"`
	PostalCode string      `json:"postalCode"`
}

// CarrierOffer is a single priced shipping option. Offers are immutable
// once computed; every request gets a freshly built slice.
type CarrierOffer struct {
	ID            string  `json:"id"`      // stable slug, e.g. "usps-priority"
	Name          string  `json:"name"`    // display name
	Carrier       string  `json:"carrier"` // e.g. "USPS"
	Service       string  `json:"service"` // e.g. "Priority Mail"
	Price         float64 `json:"price"`   // USD, 2 decimal places
	EstimatedDays string  `json:"estimatedDays"`
}

// QuoteResponse is the success payload for POST /shipping/rates. The
// endpoint returns it with status 200 even when the rates are the static
// fallback set; Fallback and Message are set only on the degraded path.
type QuoteResponse struct {
	Weight     float64        `json:"weight"`
	WeightUnit string         `json:"weightUnit"`
	Rates      []CarrierOffer `json:"rates"`
	Cached     bool           `json:"cached,omitempty"`
	Fallback   bool           `json:"fallback,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// ValidationDetails identifies the offending field of a rejected request.
type ValidationDetails struct {
	Field     string      `json:"field"`
	Value     interface{} `json:"value"`
	MaxWeight float64     `json:"maxWeight,omitempty"`
}

// ErrorResponse is the 400 payload for validation failures.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Code    string             `json:"code"`
	Details *ValidationDetails `json:"details,omitempty"`
}

// QuoteDegradedEvent is published to SNS whenever a request is served the
// fallback offer set instead of computed rates.
type QuoteDegradedEvent struct {
	EventType string    `json:"event_type"`
	Weight    float64   `json:"weight,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
