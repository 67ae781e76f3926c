package options

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontieralpha/theo/models"
	"github.com/frontieralpha/theo/settings"
)

func TestCalculateRejectsInvalidInputs(t *testing.T) {
	engine := newTestEngine()
	spec := atmCall()
	spec.Volatility = 0
	_, err := engine.Calculate(spec, models.BlackScholes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	spec = atmCall()
	spec.UnderlyingPrice = -10
	_, err = engine.Calculate(spec, models.BjerksundStensland)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestNegativeExpiryClampsToExpiryBranch(t *testing.T) {
	engine := newTestEngine()
	spec := atmCall()
	spec.UnderlyingPrice = 110
	spec.TimeToExpiry = -0.5

	result, err := engine.Calculate(spec, models.BlackScholes)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Spec.TimeToExpiry)
	assert.Equal(t, 10.0, result.TheoreticalPrice)
	assert.Equal(t, 1.0, result.Delta)
}

func TestExpiryGreeks(t *testing.T) {
	engine := newTestEngine()
	cases := []struct {
		spot       float64
		optionType models.OptionType
		delta      float64
		price      float64
	}{
		{110, models.Call, 1, 10},
		{100, models.Call, 0.5, 0},
		{90, models.Call, 0, 0},
		{110, models.Put, 0, 0},
		{100, models.Put, -0.5, 0},
		{90, models.Put, -1, 10},
	}
	for _, model := range []models.PricingModel{models.BlackScholes, models.BjerksundStensland} {
		for _, tc := range cases {
			spec := atmCall()
			spec.UnderlyingPrice = tc.spot
			spec.Type = tc.optionType
			spec.TimeToExpiry = 0

			result, err := engine.Calculate(spec, model)
			require.NoError(t, err)
			assert.Equal(t, tc.delta, result.Delta, "delta S=%v %v %v", tc.spot, tc.optionType, model)
			assert.Equal(t, tc.price, result.TheoreticalPrice, "price S=%v %v %v", tc.spot, tc.optionType, model)
			assert.Zero(t, result.Gamma)
			assert.Zero(t, result.Theta)
			assert.Zero(t, result.Vega)
			assert.Zero(t, result.Rho)
		}
	}
}

// With no dividend the American pricer collapses to Black-Scholes, so the
// finite-difference Greeks must land on the analytic ones.
func TestFiniteDifferenceMatchesAnalyticWithoutDividends(t *testing.T) {
	engine := newTestEngine()
	spec := atmCall()

	numeric, err := engine.Calculate(spec, models.BjerksundStensland)
	require.NoError(t, err)
	analytic, err := engine.Calculate(spec, models.BlackScholes)
	require.NoError(t, err)

	assert.InDelta(t, analytic.TheoreticalPrice, numeric.TheoreticalPrice, 1e-9)
	assert.InDelta(t, analytic.Delta, numeric.Delta, 1e-5)
	assert.InDelta(t, analytic.Gamma, numeric.Gamma, 1e-4)
	assert.InDelta(t, analytic.Vega, numeric.Vega, 1e-4)
	assert.InDelta(t, analytic.Theta, numeric.Theta, 1e-5)
	assert.InDelta(t, analytic.Rho, numeric.Rho, 1e-4)
}

func TestFiniteDifferenceStepsAreConfigurable(t *testing.T) {
	cfg := settings.NewConfig()
	cfg.Steps = settings.StepSizes{Spot: 1e-3, Vol: 1e-3, Time: 1e-4, Rate: 1e-3}
	engine := NewEngine(cfg)
	require.Equal(t, 1e-3, engine.Config().Steps.Spot)

	spec := atmCall()
	spec.DividendYield = 0.04
	coarse, err := engine.Calculate(spec, models.BjerksundStensland)
	require.NoError(t, err)
	fine, err := newTestEngine().Calculate(spec, models.BjerksundStensland)
	require.NoError(t, err)

	// Same derivative, different truncation error; they agree loosely.
	assert.InDelta(t, fine.Delta, coarse.Delta, 1e-3)
	assert.InDelta(t, fine.Vega, coarse.Vega, 1e-3)
}

func TestAmericanGreeksSigns(t *testing.T) {
	engine := newTestEngine()
	spec := atmCall()
	spec.DividendYield = 0.03

	call, err := engine.Calculate(spec, models.BjerksundStensland)
	require.NoError(t, err)
	assert.Greater(t, call.Delta, 0.0)
	assert.Greater(t, call.Gamma, 0.0)
	assert.Greater(t, call.Vega, 0.0)
	assert.Less(t, call.Theta, 0.0)

	spec.Type = models.Put
	put, err := engine.Calculate(spec, models.BjerksundStensland)
	require.NoError(t, err)
	assert.Less(t, put.Delta, 0.0)
	assert.Greater(t, put.Gamma, 0.0)
	assert.Greater(t, put.Vega, 0.0)
}

func TestEngineConfigDefaultsApplied(t *testing.T) {
	engine := NewEngine(settings.Config{})
	cfg := engine.Config()
	assert.Equal(t, settings.DefaultRiskFreeRate, cfg.RiskFreeRate)
	assert.Equal(t, settings.DefaultDaysInYear, cfg.DaysInYear)
	assert.Equal(t, settings.DefaultSpotStep, cfg.Steps.Spot)
}
