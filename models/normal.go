package models

import "math"

// Abramowitz & Stegun 26.2.17 rational approximation coefficients.
const (
	normP  = 0.2316419
	normB1 = 0.319381530
	normB2 = -0.356563782
	normB3 = 1.781477937
	normB4 = -1.821255978
	normB5 = 1.330274429
)

var invSqrt2Pi = 1 / math.Sqrt(2*math.Pi)

// NormPDF is the standard normal density.
func NormPDF(x float64) float64 {
	return invSqrt2Pi * math.Exp(-0.5*x*x)
}

// NormCDF is the standard normal cumulative distribution, accurate to
// about 1e-7. Both pricing models share this implementation so European
// and American values stay internally consistent.
func NormCDF(x float64) float64 {
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	t := 1 / (1 + normP*x)
	poly := t * (normB1 + t*(normB2+t*(normB3+t*(normB4+t*normB5))))
	return 1 - NormPDF(x)*poly
}
