package options

import (
	"math"

	"github.com/frontieralpha/theo/models"
)

// blackScholes computes the analytic European price and Greeks with a
// continuous dividend yield. Theta is per calendar day; vega and rho are
// per 1% move. Callers guarantee T > 0 and sigma > 0.
func (e *Engine) blackScholes(spec models.ContractSpec) models.GreeksResult {
	S := spec.UnderlyingPrice
	K := spec.Strike
	T := spec.TimeToExpiry
	sigma := spec.Volatility
	r := spec.RiskFreeRate
	q := spec.DividendYield

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	discQ := math.Exp(-q * T)
	discR := math.Exp(-r * T)
	pdfD1 := models.NormPDF(d1)

	// Gamma and vega are shared by calls and puts.
	gamma := discQ * pdfD1 / (S * sigma * sqrtT)
	vega := S * discQ * pdfD1 * sqrtT / 100

	var price, delta, theta, rho float64
	if spec.Type == models.Call {
		cdfD1 := models.NormCDF(d1)
		cdfD2 := models.NormCDF(d2)
		price = S*discQ*cdfD1 - K*discR*cdfD2
		delta = discQ * cdfD1
		theta = (-S*discQ*pdfD1*sigma/(2*sqrtT) - r*K*discR*cdfD2 + q*S*discQ*cdfD1) / e.cfg.DaysInYear
		rho = K * T * discR * cdfD2 / 100
	} else {
		cdfNegD1 := models.NormCDF(-d1)
		cdfNegD2 := models.NormCDF(-d2)
		price = K*discR*cdfNegD2 - S*discQ*cdfNegD1
		delta = -discQ * cdfNegD1
		theta = (-S*discQ*pdfD1*sigma/(2*sqrtT) + r*K*discR*cdfNegD2 - q*S*discQ*cdfNegD1) / e.cfg.DaysInYear
		rho = -K * T * discR * cdfNegD2 / 100
	}
	if price < 0 {
		price = 0
	}

	return models.GreeksResult{
		Delta:            delta,
		Gamma:            gamma,
		Theta:            theta,
		Vega:             vega,
		Rho:              rho,
		TheoreticalPrice: price,
	}
}

// europeanCallPrice is the bare Black-Scholes call value, used by the
// American pricer for its no-dividend shortcut and degeneracy fallback.
func europeanCallPrice(S, K, T, sigma, r, q float64) float64 {
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	price := S*math.Exp(-q*T)*models.NormCDF(d1) - K*math.Exp(-r*T)*models.NormCDF(d2)
	return math.Max(0, price)
}
