package options

import (
	"sync"

	"github.com/frontieralpha/theo/models"
)

// VolSurface supplies implied volatility per (strike, expiry) cell. The
// second return reports whether the surface has a value for the cell.
type VolSurface interface {
	Vol(strike, expiry float64) (float64, bool)
}

// FlatVol applies a single volatility to every cell.
type FlatVol float64

func (v FlatVol) Vol(strike, expiry float64) (float64, bool) {
	return float64(v), true
}

// DefaultHeatmapVol is the fallback volatility for cells the surface has
// no value for.
const DefaultHeatmapVol = 0.25

// Grids at or above this many cells are sharded across workers. Cells are
// independent, so only the caller's coordinate pairing is preserved.
const parallelCellThreshold = 64

// Heatmap builds a strike×expiration grid with independently computed
// call and put Greeks per cell. Expirations are year fractions; rates come
// from the engine configuration.
func (e *Engine) Heatmap(symbol string, underlyingPrice float64, strikes []float64,
	expiries []float64, vols VolSurface, model models.PricingModel) (models.GreeksHeatmap, error) {

	heatmap := models.GreeksHeatmap{
		Symbol:          symbol,
		UnderlyingPrice: underlyingPrice,
		Model:           model,
		Cells:           make([]models.HeatmapCell, len(strikes)*len(expiries)),
	}

	buildRow := func(i int) error {
		for j, expiry := range expiries {
			cell, err := e.heatmapCell(symbol, underlyingPrice, strikes[i], expiry, vols, model)
			if err != nil {
				return err
			}
			heatmap.Cells[i*len(expiries)+j] = cell
		}
		return nil
	}

	if len(heatmap.Cells) < parallelCellThreshold {
		for i := range strikes {
			if err := buildRow(i); err != nil {
				return models.GreeksHeatmap{}, err
			}
		}
		return heatmap, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for i := range strikes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := buildRow(i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if firstErr != nil {
		return models.GreeksHeatmap{}, firstErr
	}
	return heatmap, nil
}

func (e *Engine) heatmapCell(symbol string, underlyingPrice, strike, expiry float64,
	vols VolSurface, model models.PricingModel) (models.HeatmapCell, error) {

	vol := DefaultHeatmapVol
	if vols != nil {
		if v, ok := vols.Vol(strike, expiry); ok {
			vol = v
		}
	}

	spec := models.ContractSpec{
		Symbol:          symbol,
		UnderlyingPrice: underlyingPrice,
		Strike:          strike,
		TimeToExpiry:    expiry,
		Volatility:      vol,
		Type:            models.Call,
		RiskFreeRate:    e.cfg.RiskFreeRate,
		DividendYield:   e.cfg.DividendYield,
	}
	call, err := e.Calculate(spec, model)
	if err != nil {
		return models.HeatmapCell{}, err
	}
	spec.Type = models.Put
	put, err := e.Calculate(spec, model)
	if err != nil {
		return models.HeatmapCell{}, err
	}

	return models.HeatmapCell{
		Strike: strike,
		Expiry: expiry,
		Call:   call.GreeksResult,
		Put:    put.GreeksResult,
	}, nil
}
