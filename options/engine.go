package options

import (
	"math"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/frontieralpha/theo/models"
	"github.com/frontieralpha/theo/settings"
)

// Engine prices single contracts and derives their Greeks. Configuration
// (rates, day-count, finite-difference steps) is fixed at construction;
// the engine holds no mutable state and is safe to share across callers.
type Engine struct {
	cfg settings.Config
}

func NewEngine(cfg settings.Config) *Engine {
	return &Engine{cfg: cfg.ApplyDefaults()}
}

func (e *Engine) Config() settings.Config {
	return e.cfg
}

// Calculate computes price and Greeks for one contract under the given
// model. Negative time-to-expiry clamps to zero; expired contracts
// resolve to intrinsic value with only delta non-zero.
func (e *Engine) Calculate(spec models.ContractSpec, model models.PricingModel) (models.ContractGreeks, error) {
	spec = spec.Clamp()
	if err := spec.Validate(); err != nil {
		return models.ContractGreeks{}, err
	}

	result := models.ContractGreeks{Spec: spec, Model: model}
	if spec.IsExpired() {
		result.GreeksResult = expiryGreeks(spec)
		return result, nil
	}

	switch model {
	case models.BlackScholes:
		result.GreeksResult = e.blackScholes(spec)
	case models.BjerksundStensland:
		result.GreeksResult = e.finiteDifferenceGreeks(spec)
	default:
		return models.ContractGreeks{}, errors.Wrapf(models.ErrInvalidInput, "unknown pricing model %v", model)
	}
	result.GreeksResult = sanitize(result.GreeksResult)
	return result, nil
}

// expiryGreeks handles T=0. Delta is the exercise indicator (half on an
// at-the-money tie), every other sensitivity is zero and the price is
// intrinsic.
func expiryGreeks(spec models.ContractSpec) models.GreeksResult {
	var delta float64
	if spec.Type == models.Call {
		switch {
		case spec.UnderlyingPrice > spec.Strike:
			delta = 1
		case spec.UnderlyingPrice == spec.Strike:
			delta = 0.5
		}
	} else {
		switch {
		case spec.UnderlyingPrice < spec.Strike:
			delta = -1
		case spec.UnderlyingPrice == spec.Strike:
			delta = -0.5
		}
	}
	return models.GreeksResult{
		Delta:            delta,
		TheoreticalPrice: spec.IntrinsicValue(),
	}
}

// finiteDifferenceGreeks derives Greeks for the American model by central
// differences over the pricer; Bjerksund-Stensland has no closed-form
// partials. The unbumped price is computed once and reused for gamma and
// the reported theoretical price.
func (e *Engine) finiteDifferenceGreeks(spec models.ContractSpec) models.GreeksResult {
	steps := e.cfg.Steps
	base := e.americanPrice(spec)

	dS := spec.UnderlyingPrice * steps.Spot
	spotUp := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.UnderlyingPrice += dS }))
	spotDown := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.UnderlyingPrice -= dS }))

	volUp := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.Volatility += steps.Vol }))
	volDown := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.Volatility -= steps.Vol }))

	timeUp := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.TimeToExpiry += steps.Time }))
	timeDown := e.americanPrice(bump(spec, func(c *models.ContractSpec) {
		c.TimeToExpiry = math.Max(steps.Time, c.TimeToExpiry-steps.Time)
	}))

	rateUp := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.RiskFreeRate += steps.Rate }))
	rateDown := e.americanPrice(bump(spec, func(c *models.ContractSpec) { c.RiskFreeRate -= steps.Rate }))

	return models.GreeksResult{
		Delta:            (spotUp - spotDown) / (2 * dS),
		Gamma:            (spotUp - 2*base + spotDown) / (dS * dS),
		Vega:             (volUp - volDown) / (2 * steps.Vol) / 100,
		Theta:            -(timeUp - timeDown) / (2 * steps.Time) / e.cfg.DaysInYear,
		Rho:              (rateUp - rateDown) / (2 * steps.Rate) / 100,
		TheoreticalPrice: math.Max(0, base),
	}
}

// bump clones the spec and applies one input perturbation.
func bump(spec models.ContractSpec, adjust func(*models.ContractSpec)) models.ContractSpec {
	var bumped models.ContractSpec
	if err := copier.Copy(&bumped, &spec); err != nil {
		bumped = spec
	}
	adjust(&bumped)
	return bumped
}

// sanitize folds any numerical degeneracy to zero so NaN/Inf never
// escapes to callers.
func sanitize(g models.GreeksResult) models.GreeksResult {
	g.Delta = finiteOrZero(g.Delta)
	g.Gamma = finiteOrZero(g.Gamma)
	g.Theta = finiteOrZero(g.Theta)
	g.Vega = finiteOrZero(g.Vega)
	g.Rho = finiteOrZero(g.Rho)
	g.TheoreticalPrice = finiteOrZero(g.TheoreticalPrice)
	return g
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
