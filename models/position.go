package models

// DefaultContractMultiplier is the usual equity-option contract size.
const DefaultContractMultiplier = 100

// Position is a signed holding of a single contract. Positive quantity is
// long, negative is short.
type Position struct {
	Contract           ContractSpec
	Quantity           float64
	ContractMultiplier float64 // shares per contract; 0 means DefaultContractMultiplier
}

// Scale is the factor applied to per-unit Greeks for this position.
func (p Position) Scale() float64 {
	multiplier := p.ContractMultiplier
	if multiplier == 0 {
		multiplier = DefaultContractMultiplier
	}
	return p.Quantity * multiplier
}

// PositionRecord is the CSV row shape for portfolio files. Expiration
// stays a date string here; conversion to year-fractions happens at the
// load boundary with the calendar-day convention.
type PositionRecord struct {
	Symbol          string  `csv:"symbol"`
	UnderlyingPrice float64 `csv:"underlying_price"`
	Strike          float64 `csv:"strike"`
	Expiration      string  `csv:"expiration"`
	Type            string  `csv:"type"`
	Volatility      float64 `csv:"volatility"`
	Quantity        float64 `csv:"quantity"`
	Multiplier      float64 `csv:"multiplier"`
}

// PositionGreeks is the per-position audit breakdown kept alongside the
// portfolio nets.
type PositionGreeks struct {
	Position Position
	Raw      GreeksResult
	Weighted GreeksResult
}

// PortfolioGreeks is the aggregate exposure of a set of positions.
type PortfolioGreeks struct {
	NetDelta      float64
	NetGamma      float64
	NetTheta      float64
	NetVega       float64
	NetRho        float64
	PositionCount int
	Positions     []PositionGreeks
}
