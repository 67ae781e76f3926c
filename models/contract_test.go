package models

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() ContractSpec {
	return ContractSpec{
		Symbol:          "SPY",
		UnderlyingPrice: 100,
		Strike:          100,
		TimeToExpiry:    1,
		Volatility:      0.2,
		Type:            Call,
		RiskFreeRate:    0.05,
	}
}

func TestValidateRejectsBadInputs(t *testing.T) {
	cases := map[string]func(*ContractSpec){
		"zero underlying":   func(c *ContractSpec) { c.UnderlyingPrice = 0 },
		"negative strike":   func(c *ContractSpec) { c.Strike = -5 },
		"zero volatility":   func(c *ContractSpec) { c.Volatility = 0 },
		"negative dividend": func(c *ContractSpec) { c.DividendYield = -0.01 },
	}
	for name, mutate := range cases {
		spec := validSpec()
		mutate(&spec)
		err := spec.Validate()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidInput), name)
	}
	require.NoError(t, validSpec().Validate())
}

func TestClampFloorsNegativeExpiry(t *testing.T) {
	spec := validSpec()
	spec.TimeToExpiry = -0.3
	clamped := spec.Clamp()
	assert.Equal(t, 0.0, clamped.TimeToExpiry)
	assert.True(t, clamped.IsExpired())
	// Original is untouched.
	assert.Equal(t, -0.3, spec.TimeToExpiry)
}

func TestIntrinsicValue(t *testing.T) {
	spec := validSpec()
	spec.UnderlyingPrice = 110
	assert.Equal(t, 10.0, spec.IntrinsicValue())

	spec.Type = Put
	assert.Equal(t, 0.0, spec.IntrinsicValue())
	spec.UnderlyingPrice = 90
	assert.Equal(t, 10.0, spec.IntrinsicValue())
}

func TestParseOptionType(t *testing.T) {
	for input, want := range map[string]OptionType{
		"call": Call, "CALL": Call, "c": Call,
		"put": Put, " Put ": Put, "P": Put,
	} {
		got, err := ParseOptionType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseOptionType("straddle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestParsePricingModel(t *testing.T) {
	got, err := ParsePricingModel("black-scholes")
	require.NoError(t, err)
	assert.Equal(t, BlackScholes, got)

	got, err = ParsePricingModel("bjerksund-stensland")
	require.NoError(t, err)
	assert.Equal(t, BjerksundStensland, got)

	_, err = ParsePricingModel("binomial")
	require.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "call", Call.String())
	assert.Equal(t, "put", Put.String())
	assert.Equal(t, "black-scholes", BlackScholes.String())
	assert.Equal(t, "bjerksund-stensland", BjerksundStensland.String())
}

func TestScaleIsLinear(t *testing.T) {
	raw := GreeksResult{Delta: 0.5, Gamma: 0.02, Theta: -0.01, Vega: 0.1, Rho: 0.05, TheoreticalPrice: 3.2}
	weighted := raw.Scale(-200)
	assert.Equal(t, -100.0, weighted.Delta)
	assert.Equal(t, -4.0, weighted.Gamma)
	assert.Equal(t, 2.0, weighted.Theta)
	assert.Equal(t, -20.0, weighted.Vega)
	assert.Equal(t, -10.0, weighted.Rho)
	assert.Equal(t, -640.0, weighted.TheoreticalPrice)
}
