package options

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/frontieralpha/theo/models"
)

// Aggregate computes net portfolio Greeks across signed positions. Each
// position is priced with its own time-to-expiry and volatility; weighted
// Greeks are always raw × quantity × multiplier. Summation is commutative,
// so the result is order-independent up to floating tolerance.
func (e *Engine) Aggregate(positions []models.Position, model models.PricingModel) (models.PortfolioGreeks, error) {
	n := len(positions)
	breakdown := make([]models.PositionGreeks, 0, n)
	deltas := make([]float64, 0, n)
	gammas := make([]float64, 0, n)
	thetas := make([]float64, 0, n)
	vegas := make([]float64, 0, n)
	rhos := make([]float64, 0, n)

	for _, position := range positions {
		contract, err := e.Calculate(position.Contract, model)
		if err != nil {
			return models.PortfolioGreeks{}, errors.Wrapf(err, "position %v", position.Contract.Symbol)
		}
		raw := contract.GreeksResult
		weighted := raw.Scale(position.Scale())
		breakdown = append(breakdown, models.PositionGreeks{
			Position: position,
			Raw:      raw,
			Weighted: weighted,
		})
		deltas = append(deltas, weighted.Delta)
		gammas = append(gammas, weighted.Gamma)
		thetas = append(thetas, weighted.Theta)
		vegas = append(vegas, weighted.Vega)
		rhos = append(rhos, weighted.Rho)
	}

	return models.PortfolioGreeks{
		NetDelta:      floats.Sum(deltas),
		NetGamma:      floats.Sum(gammas),
		NetTheta:      floats.Sum(thetas),
		NetVega:       floats.Sum(vegas),
		NetRho:        floats.Sum(rhos),
		PositionCount: n,
		Positions:     breakdown,
	}, nil
}
