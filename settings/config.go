package settings

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Documented defaults for rate inputs supplied by configuration.
const (
	DefaultRiskFreeRate  = 0.0525
	DefaultDividendYield = 0.0
	DefaultDaysInYear    = 365.0
)

// Default central finite-difference step sizes. Relative
// (scale-proportional) steps balance truncation error against
// floating-point cancellation.
const (
	DefaultSpotStep = 1e-4 // relative to the underlying price
	DefaultVolStep  = 1e-4
	DefaultTimeStep = 1e-5
	DefaultRateStep = 1e-4
)

// StepSizes configures the finite-difference bumps used for models with
// no closed-form partials. Exposed so tests can pin them.
type StepSizes struct {
	Spot float64 `yaml:"spot"`
	Vol  float64 `yaml:"vol"`
	Time float64 `yaml:"time"`
	Rate float64 `yaml:"rate"`
}

type Config struct {
	RiskFreeRate  float64   `yaml:"risk_free_rate"`
	DividendYield float64   `yaml:"dividend_yield"`
	DaysInYear    float64   `yaml:"days_in_year"`
	LogLevel      string    `yaml:"log_level"`
	Steps         StepSizes `yaml:"finite_difference"`
}

// NewConfig returns a config populated with the documented defaults.
func NewConfig() Config {
	return Config{
		RiskFreeRate:  DefaultRiskFreeRate,
		DividendYield: DefaultDividendYield,
		DaysInYear:    DefaultDaysInYear,
		LogLevel:      "info",
		Steps: StepSizes{
			Spot: DefaultSpotStep,
			Vol:  DefaultVolStep,
			Time: DefaultTimeStep,
			Rate: DefaultRateStep,
		},
	}
}

// ApplyDefaults fills any unset field with its default value.
func (c Config) ApplyDefaults() Config {
	defaults := NewConfig()
	if c.RiskFreeRate == 0 {
		c.RiskFreeRate = defaults.RiskFreeRate
	}
	if c.DaysInYear == 0 {
		c.DaysInYear = defaults.DaysInYear
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Steps.Spot == 0 {
		c.Steps.Spot = defaults.Steps.Spot
	}
	if c.Steps.Vol == 0 {
		c.Steps.Vol = defaults.Steps.Vol
	}
	if c.Steps.Time == 0 {
		c.Steps.Time = defaults.Steps.Time
	}
	if c.Steps.Rate == 0 {
		c.Steps.Rate = defaults.Steps.Rate
	}
	return c
}

// LoadConfig reads a yaml config file, filling missing fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %v", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %v", path)
	}
	return cfg.ApplyDefaults(), nil
}
