package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxWeightOz is the heaviest package we quote (100 lb). This is a business
// ceiling, not an overflow guard.
const MaxWeightOz = 1600

// Failure kinds. The caller-facing code is always VALIDATION_ERROR; the
// kind drives the message text and which details are attached.
const (
	KindMissingField      = "MISSING_FIELD"
	KindInvalidWeight     = "INVALID_WEIGHT"
	KindWeightTooHigh     = "WEIGHT_TOO_HIGH"
	KindInvalidState      = "INVALID_STATE"
	KindInvalidPostalCode = "INVALID_POSTAL_CODE"
)

// FieldError describes why a single request field was rejected.
type FieldError struct {
	Kind    string
	Field   string
	Message string
	Value   interface{}
}

func (e *FieldError) Error() string { return e.Message }

// NormalizedRequest is a validated, canonical quote request.
type NormalizedRequest struct {
	WeightOz   float64
	State      string
	PostalCode string
}

var postalCodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// usStates covers the 50 states plus DC and the five inhabited territories.
var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {}, "PR": {}, "VI": {}, "GU": {}, "AS": {}, "MP": {},
}

// Validate applies the request rules in order and stops at the first
// failure. It is a pure normalizer: no side effects, no I/O.
func Validate(weight interface{}, state, postalCode string) (*NormalizedRequest, *FieldError) {
	if weight == nil {
		return nil, &FieldError{
			Kind:    KindMissingField,
			Field:   "weight",
			Message: "weight is required",
			Value:   weight,
		}
	}

	weightOz, ok := toFloat(weight)
	if !ok || math.IsNaN(weightOz) || weightOz <= 0 {
		return nil, &FieldError{
			Kind:    KindInvalidWeight,
			Field:   "weight",
			Message: "weight must be a positive number of ounces",
			Value:   weight,
		}
	}
	if weightOz > MaxWeightOz {
		return nil, &FieldError{
			Kind:    KindWeightTooHigh,
			Field:   "weight",
			Message: fmt.Sprintf("weight exceeds the maximum of %d oz", MaxWeightOz),
			Value:   weight,
		}
	}

	normState := strings.ToUpper(strings.TrimSpace(state))
	if _, found := usStates[normState]; normState == "" || !found {
		return nil, &FieldError{
			Kind:    KindInvalidState,
			Field:   "state",
			Message: "state must be a valid two-letter US state or territory code",
			Value:   state,
		}
	}

	normPostal := strings.TrimSpace(postalCode)
	if !postalCodeRe.MatchString(normPostal) {
		return nil, &FieldError{
			Kind:    KindInvalidPostalCode,
			Field:   "postalCode",
			Message: "postalCode must be a 5-digit ZIP or ZIP+4",
			Value:   postalCode,
		}
	}

	return &NormalizedRequest{
		WeightOz:   weightOz,
		State:      normState,
		PostalCode: normPostal,
	}, nil
}

// toFloat coerces the JSON representations a weight may arrive as.
func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
