package utils

import (
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/frontieralpha/theo/models"
)

// Accepted expiration layouts. Date-only strings parse as midnight UTC.
var expirationLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

const hoursPerDay = 24

// ToTimeObject parses an expiration date string.
func ToTimeObject(timeString string) (time.Time, error) {
	for _, layout := range expirationLayouts {
		if parsed, err := time.Parse(layout, timeString); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.Wrapf(models.ErrInvalidInput, "unparseable expiration %q", timeString)
}

// YearsToExpiry converts an expiration date string to a year fraction
// using the calendar-day convention (elapsed calendar days / daysInYear).
// Past expirations clamp to zero rather than going negative.
func YearsToExpiry(expiration string, asOf time.Time, daysInYear float64) (float64, error) {
	expiry, err := ToTimeObject(expiration)
	if err != nil {
		return 0, err
	}
	days := expiry.Sub(asOf).Hours() / hoursPerDay
	years := days / daysInYear
	if years < 0 {
		years = 0
	}
	return years, nil
}

// Round rounds a number to the nearest multiple of decimal.
func Round(x, decimal float64) float64 {
	return math.Round(x/decimal) * decimal
}

// RoundToNearest rounds a number to the nearest multiple of interval.
func RoundToNearest(num float64, interval float64) float64 {
	return math.Round(num/interval) * interval
}

// Arange returns the inclusive range [min, max] in increments of step.
func Arange(min float64, max float64, step float64) []float64 {
	a := make([]float64, int((max-min)/step)+1)
	for i := range a {
		a[i] = min + float64(i)*step
	}
	return a
}

// StrikeLadder builds a ladder of numStrikes strikes at the given
// interval, centred on the strike nearest the underlying price.
func StrikeLadder(underlyingPrice float64, numStrikes int, interval float64) []float64 {
	midStrike := RoundToNearest(underlyingPrice, interval)
	minStrike := midStrike - interval*math.Floor(float64(numStrikes)/2)
	maxStrike := midStrike + interval*math.Ceil(float64(numStrikes)/2)
	return Arange(minStrike, maxStrike, interval)
}

// LoadPositions reads a portfolio CSV into positions, converting
// expiration date strings to year fractions as of the given time. This is
// the only string boundary into the pricing core.
func LoadPositions(path string, asOf time.Time, daysInYear float64, r float64, q float64) ([]models.Position, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening portfolio %v", path)
	}
	defer file.Close()

	var records []models.PositionRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing portfolio %v", path)
	}

	positions := make([]models.Position, 0, len(records))
	for _, record := range records {
		optionType, err := models.ParseOptionType(record.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "position %v", record.Symbol)
		}
		timeToExpiry, err := YearsToExpiry(record.Expiration, asOf, daysInYear)
		if err != nil {
			return nil, errors.Wrapf(err, "position %v", record.Symbol)
		}
		positions = append(positions, models.Position{
			Contract: models.ContractSpec{
				Symbol:          record.Symbol,
				UnderlyingPrice: record.UnderlyingPrice,
				Strike:          record.Strike,
				TimeToExpiry:    timeToExpiry,
				Volatility:      record.Volatility,
				Type:            optionType,
				RiskFreeRate:    r,
				DividendYield:   q,
			},
			Quantity:           record.Quantity,
			ContractMultiplier: record.Multiplier,
		})
	}
	return positions, nil
}
