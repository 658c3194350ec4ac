package validation_test

import (
	"encoding/json"
	"testing"

	"quote-service/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MissingWeight(t *testing.T) {
	_, err := validation.Validate(nil, "MD", "21201")
	assert.NotNil(t, err)
	assert.Equal(t, validation.KindMissingField, err.Kind)
	assert.Equal(t, "weight", err.Field)
}

func TestValidate_NonNumericWeight(t *testing.T) {
	_, err := validation.Validate("abc", "MD", "21201")
	assert.NotNil(t, err)
	assert.Equal(t, validation.KindInvalidWeight, err.Kind)
	assert.Equal(t, "weight", err.Field)
	assert.Equal(t, "abc", err.Value)
}

func TestValidate_NonPositiveWeight(t *testing.T) {
	for _, w := range []float64{0, -5} {
		_, err := validation.Validate(w, "MD", "21201")
		assert.NotNil(t, err)
		assert.Equal(t, validation.KindInvalidWeight, err.Kind)
	}
}

func TestValidate_WeightTooHigh(t *testing.T) {
	_, err := validation.Validate(float64(1601), "MD", "21201")
	assert.NotNil(t, err)
	assert.Equal(t, validation.KindWeightTooHigh, err.Kind)
	assert.Equal(t, "weight", err.Field)
}

func TestValidate_WeightAtCeiling(t *testing.T) {
	norm, err := validation.Validate(float64(1600), "MD", "21201")
	assert.Nil(t, err)
	assert.Equal(t, float64(1600), norm.WeightOz)
}

func TestValidate_WeightCoercion(t *testing.T) {
	// Callers send weight as number, numeric string, or json.Number.
	for _, w := range []interface{}{10, int64(10), float64(10), "10", json.Number("10")} {
		norm, err := validation.Validate(w, "MD", "21201")
		assert.Nil(t, err)
		assert.Equal(t, float64(10), norm.WeightOz)
	}
}

func TestValidate_StateNormalization(t *testing.T) {
	norm, err := validation.Validate(float64(10), "  md ", "21201")
	assert.Nil(t, err)
	assert.Equal(t, "MD", norm.State)
}

func TestValidate_Territories(t *testing.T) {
	for _, st := range []string{"DC", "PR", "VI", "GU", "AS", "MP"} {
		_, err := validation.Validate(float64(10), st, "00901")
		assert.Nil(t, err, "expected %s to be accepted", st)
	}
}

func TestValidate_InvalidState(t *testing.T) {
	for _, st := range []string{"", "XX", "Maryland", "M"} {
		_, err := validation.Validate(float64(10), st, "21201")
		assert.NotNil(t, err)
		assert.Equal(t, validation.KindInvalidState, err.Kind)
		assert.Equal(t, "state", err.Field)
	}
}

func TestValidate_PostalCode(t *testing.T) {
	valid := []string{"21201", "90210-1234"}
	for _, p := range valid {
		_, err := validation.Validate(float64(10), "MD", p)
		assert.Nil(t, err, "expected %q to be accepted", p)
	}

	invalid := []string{"", "2120", "212011", "abcde", "21201-12", "21201-12345"}
	for _, p := range invalid {
		_, err := validation.Validate(float64(10), "MD", p)
		assert.NotNil(t, err, "expected %q to be rejected", p)
		assert.Equal(t, validation.KindInvalidPostalCode, err.Kind)
		assert.Equal(t, "postalCode", err.Field)
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	// Bad weight is reported even when state and postal are also bad.
	_, err := validation.Validate("abc", "XX", "bad")
	assert.NotNil(t, err)
	assert.Equal(t, validation.KindInvalidWeight, err.Kind)
}
