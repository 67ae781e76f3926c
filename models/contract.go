package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidInput marks contract inputs that are rejected before any
// formula evaluation. Callers can match it with errors.Is.
var ErrInvalidInput = errors.New("invalid contract input")

type OptionType int

const (
	Call OptionType = iota
	Put
)

var optionTypes = [...]string{
	"call",
	"put",
}

func (t OptionType) String() string {
	if t < Call || t > Put {
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
	return optionTypes[t]
}

func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, errors.Wrapf(ErrInvalidInput, "unknown option type %q", s)
}

// PricingModel selects the valuation model for a contract. The set is
// closed; every switch over it handles both members so adding a model is
// a compile-time change.
type PricingModel int

const (
	BlackScholes PricingModel = iota
	BjerksundStensland
)

var pricingModels = [...]string{
	"black-scholes",
	"bjerksund-stensland",
}

func (m PricingModel) String() string {
	if m < BlackScholes || m > BjerksundStensland {
		return fmt.Sprintf("PricingModel(%d)", int(m))
	}
	return pricingModels[m]
}

func ParsePricingModel(s string) (PricingModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black-scholes", "blackscholes", "bs", "european":
		return BlackScholes, nil
	case "bjerksund-stensland", "bjerksundstensland", "bjs", "american":
		return BjerksundStensland, nil
	}
	return 0, errors.Wrapf(ErrInvalidInput, "unknown pricing model %q", s)
}

// ContractSpec is the full input set for pricing a single option. It is a
// plain value, recomputed per call; nothing mutates it after construction.
type ContractSpec struct {
	Symbol          string
	UnderlyingPrice float64
	Strike          float64
	TimeToExpiry    float64 // years, calendar-day convention
	Volatility      float64
	Type            OptionType
	RiskFreeRate    float64
	DividendYield   float64
}

// Validate rejects inputs that no model can price. A negative
// TimeToExpiry is not an error here; Clamp folds it to expiry.
func (c ContractSpec) Validate() error {
	if c.UnderlyingPrice <= 0 {
		return errors.Wrapf(ErrInvalidInput, "underlying price %v must be positive", c.UnderlyingPrice)
	}
	if c.Strike <= 0 {
		return errors.Wrapf(ErrInvalidInput, "strike %v must be positive", c.Strike)
	}
	if c.Volatility <= 0 {
		return errors.Wrapf(ErrInvalidInput, "volatility %v must be positive", c.Volatility)
	}
	if c.DividendYield < 0 {
		return errors.Wrapf(ErrInvalidInput, "dividend yield %v must not be negative", c.DividendYield)
	}
	return nil
}

// Clamp returns a copy with negative time-to-expiry floored at zero.
func (c ContractSpec) Clamp() ContractSpec {
	if c.TimeToExpiry < 0 {
		c.TimeToExpiry = 0
	}
	return c
}

// IsExpired reports whether the contract is at or past expiry.
func (c ContractSpec) IsExpired() bool {
	return c.TimeToExpiry <= 0
}

// IntrinsicValue is the option payoff at the current underlying price.
func (c ContractSpec) IntrinsicValue() float64 {
	value := c.UnderlyingPrice - c.Strike
	if c.Type == Put {
		value = c.Strike - c.UnderlyingPrice
	}
	if value < 0 {
		value = 0
	}
	return value
}
