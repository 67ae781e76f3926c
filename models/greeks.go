package models

// GreeksResult holds the per-unit sensitivities of a single contract.
// Theta is quoted per calendar day, vega per 1% volatility move and rho
// per 1% rate move. Pure value, no identity.
type GreeksResult struct {
	Delta            float64
	Gamma            float64
	Theta            float64
	Vega             float64
	Rho              float64
	TheoreticalPrice float64
}

// Scale multiplies every sensitivity by the given factor. Weighted
// position Greeks are always derived this way from the raw result.
func (g GreeksResult) Scale(factor float64) GreeksResult {
	return GreeksResult{
		Delta:            g.Delta * factor,
		Gamma:            g.Gamma * factor,
		Theta:            g.Theta * factor,
		Vega:             g.Vega * factor,
		Rho:              g.Rho * factor,
		TheoreticalPrice: g.TheoreticalPrice * factor,
	}
}

// ContractGreeks pairs a Greeks result with the inputs and model that
// produced it.
type ContractGreeks struct {
	Spec  ContractSpec
	Model PricingModel
	GreeksResult
}
