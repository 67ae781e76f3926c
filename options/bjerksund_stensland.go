package options

import (
	"math"

	"github.com/frontieralpha/theo/models"
)

// americanPrice values a contract under the Bjerksund-Stensland 1993
// approximation. Puts use the duality transform: an American put on
// (S, K, r, q) is an American call on (K, S, q, r).
func (e *Engine) americanPrice(spec models.ContractSpec) float64 {
	if spec.Type == models.Put {
		return americanCall(spec.Strike, spec.UnderlyingPrice, spec.TimeToExpiry,
			spec.Volatility, spec.DividendYield, spec.RiskFreeRate)
	}
	return americanCall(spec.UnderlyingPrice, spec.Strike, spec.TimeToExpiry,
		spec.Volatility, spec.RiskFreeRate, spec.DividendYield)
}

func americanCall(S, K, T, sigma, r, q float64) float64 {
	if q <= 0 {
		// Early exercise is never optimal without dividends; the
		// American call collapses to the European value.
		return europeanCallPrice(S, K, T, sigma, r, q)
	}

	sigma2 := sigma * sigma
	// b is the cost of carry; the exercise-boundary exponent solves
	// 0.5σ²β(β−1) + bβ − r = 0.
	b := r - q
	root := math.Pow(b/sigma2-0.5, 2) + 2*r/sigma2
	if root < 0 {
		return europeanCallPrice(S, K, T, sigma, r, q)
	}
	beta := (0.5 - b/sigma2) + math.Sqrt(root)
	if beta <= 1 {
		// The exercise boundary is unbounded; the approximation
		// degenerates to the European value.
		return europeanCallPrice(S, K, T, sigma, r, q)
	}

	bInfinity := beta / (beta - 1) * K
	b0 := K
	if r > q {
		b0 = math.Max(K, r/(r-q)*K)
	}
	h := -(r*T + 2*sigma*math.Sqrt(T)) * b0 / (bInfinity - b0)
	// Approximate early-exercise boundary.
	boundary := b0 + (bInfinity-b0)*(1-math.Exp(h))
	if S >= boundary {
		return S - K
	}

	alpha := (boundary - K) * math.Pow(boundary, -beta)
	price := alpha*math.Pow(S, beta) -
		alpha*phi(S, T, beta, boundary, boundary, r, q, sigma) +
		phi(S, T, 1, boundary, boundary, r, q, sigma) -
		phi(S, T, 1, K, boundary, r, q, sigma) -
		K*phi(S, T, 0, boundary, boundary, r, q, sigma) +
		K*phi(S, T, 0, K, boundary, r, q, sigma)

	// The flat-boundary approximation can leak below the European value
	// in thin corners; an American option is never worth less.
	european := europeanCallPrice(S, K, T, sigma, r, q)
	if math.IsNaN(price) || math.IsInf(price, 0) || price < european {
		return european
	}
	return price
}

// phi is the Bjerksund-Stensland helper integral for a power claim
// S^gamma knocked out at the boundary.
func phi(S, T, gamma, H, boundary, r, q, sigma float64) float64 {
	sigma2 := sigma * sigma
	sqrtT := math.Sqrt(T)
	lambda := (-r + gamma*(r-q) + 0.5*gamma*(gamma-1)*sigma2) * T
	d := -(math.Log(S/H) + (r-q+(gamma-0.5)*sigma2)*T) / (sigma * sqrtT)
	kappa := 2*(r-q)/sigma2 + (2*gamma - 1)
	return math.Exp(lambda) * math.Pow(S, gamma) *
		(models.NormCDF(d) - math.Pow(boundary/S, kappa)*models.NormCDF(d-2*math.Log(boundary/S)/(sigma*sqrtT)))
}
