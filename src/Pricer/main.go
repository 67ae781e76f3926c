package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frontieralpha/theo/logger"
	"github.com/frontieralpha/theo/models"
	"github.com/frontieralpha/theo/options"
	"github.com/frontieralpha/theo/settings"
	"github.com/frontieralpha/theo/utils"
)

var (
	configFile string
	cfg        settings.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Options pricing and Greeks engine",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = settings.NewConfig()
			if configFile != "" {
				loaded, err := settings.LoadConfig(configFile)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			logger.SetLevel(cfg.LogLevel)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml config file")

	rootCmd.AddCommand(priceCmd(), portfolioCmd(), heatmapCmd())
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func priceCmd() *cobra.Command {
	var (
		symbol     string
		underlying float64
		strike     float64
		expiration string
		tte        float64
		vol        float64
		optionType string
		modelName  string
		rate       float64
		dividend   float64
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single contract and print its Greeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedType, err := models.ParseOptionType(optionType)
			if err != nil {
				return err
			}
			model, err := models.ParsePricingModel(modelName)
			if err != nil {
				return err
			}
			if expiration != "" {
				tte, err = utils.YearsToExpiry(expiration, time.Now().UTC(), cfg.DaysInYear)
				if err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("rate") {
				rate = cfg.RiskFreeRate
			}
			if !cmd.Flags().Changed("dividend") {
				dividend = cfg.DividendYield
			}

			engine := options.NewEngine(cfg)
			result, err := engine.Calculate(models.ContractSpec{
				Symbol:          symbol,
				UnderlyingPrice: underlying,
				Strike:          strike,
				TimeToExpiry:    tte,
				Volatility:      vol,
				Type:            parsedType,
				RiskFreeRate:    rate,
				DividendYield:   dividend,
			}, model)
			if err != nil {
				return err
			}

			fmt.Printf("%v %v %v @ %v (%v)\n", symbol, strike, parsedType, underlying, model)
			printFields(structs.Map(result.GreeksResult))
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "underlying symbol")
	cmd.Flags().Float64Var(&underlying, "underlying", 0, "underlying price")
	cmd.Flags().Float64Var(&strike, "strike", 0, "strike price")
	cmd.Flags().StringVar(&expiration, "expiration", "", "expiration date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&tte, "tte", 0, "time to expiry in years (alternative to --expiration)")
	cmd.Flags().Float64Var(&vol, "vol", 0, "implied volatility")
	cmd.Flags().StringVar(&optionType, "type", "call", "option type: call or put")
	cmd.Flags().StringVar(&modelName, "model", "black-scholes", "pricing model: black-scholes or bjerksund-stensland")
	cmd.Flags().Float64Var(&rate, "rate", 0, "risk-free rate override")
	cmd.Flags().Float64Var(&dividend, "dividend", 0, "dividend yield override")
	return cmd
}

func portfolioCmd() *cobra.Command {
	var (
		file      string
		modelName string
	)
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Aggregate net Greeks over a CSV portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := models.ParsePricingModel(modelName)
			if err != nil {
				return err
			}
			positions, err := utils.LoadPositions(file, time.Now().UTC(), cfg.DaysInYear, cfg.RiskFreeRate, cfg.DividendYield)
			if err != nil {
				return err
			}

			engine := options.NewEngine(cfg)
			portfolio, err := engine.Aggregate(positions, model)
			if err != nil {
				return err
			}

			reportID := uuid.New().String()
			logger.Infof("Aggregated %v positions, report %v", portfolio.PositionCount, reportID)
			fmt.Printf("Portfolio report %v (%v positions, %v)\n", reportID, portfolio.PositionCount, model)
			fmt.Printf("  NetDelta: %v\n  NetGamma: %v\n  NetTheta: %v\n  NetVega: %v\n  NetRho: %v\n",
				portfolio.NetDelta, portfolio.NetGamma, portfolio.NetTheta, portfolio.NetVega, portfolio.NetRho)
			for _, position := range portfolio.Positions {
				fmt.Printf("  %v %v %v x%v: delta %v (weighted %v), theo %v\n",
					position.Position.Contract.Symbol,
					position.Position.Contract.Strike,
					position.Position.Contract.Type,
					position.Position.Quantity,
					position.Raw.Delta, position.Weighted.Delta,
					position.Raw.TheoreticalPrice)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "positions.csv", "portfolio CSV file")
	cmd.Flags().StringVar(&modelName, "model", "black-scholes", "pricing model")
	return cmd
}

func heatmapCmd() *cobra.Command {
	var (
		symbol      string
		underlying  float64
		strikesArg  string
		numStrikes  int
		interval    float64
		expirations string
		vol         float64
		modelName   string
	)
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render a strike×expiration Greeks grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := models.ParsePricingModel(modelName)
			if err != nil {
				return err
			}

			strikes, err := parseFloats(strikesArg)
			if err != nil {
				return err
			}
			if len(strikes) == 0 {
				strikes = utils.StrikeLadder(underlying, numStrikes, interval)
			}

			now := time.Now().UTC()
			var expiries []float64
			for _, date := range strings.Split(expirations, ",") {
				years, err := utils.YearsToExpiry(strings.TrimSpace(date), now, cfg.DaysInYear)
				if err != nil {
					return err
				}
				expiries = append(expiries, years)
			}

			engine := options.NewEngine(cfg)
			heatmap, err := engine.Heatmap(symbol, underlying, strikes, expiries, options.FlatVol(vol), model)
			if err != nil {
				return err
			}

			fmt.Printf("%v heatmap @ %v (%v): %v cells\n", symbol, underlying, model, len(heatmap.Cells))
			for _, cell := range heatmap.Cells {
				fmt.Printf("  K=%v T=%.4f  call %v / delta %v  put %v / delta %v\n",
					cell.Strike, cell.Expiry,
					cell.Call.TheoreticalPrice, cell.Call.Delta,
					cell.Put.TheoreticalPrice, cell.Put.Delta)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&symbol, "symbol", "", "underlying symbol")
	cmd.Flags().Float64Var(&underlying, "underlying", 0, "underlying price")
	cmd.Flags().StringVar(&strikesArg, "strikes", "", "comma-separated strikes (default: ladder around the underlying)")
	cmd.Flags().IntVar(&numStrikes, "num-strikes", 10, "ladder size when --strikes is unset")
	cmd.Flags().Float64Var(&interval, "interval", 5, "ladder strike interval")
	cmd.Flags().StringVar(&expirations, "expirations", "", "comma-separated expiration dates")
	cmd.Flags().Float64Var(&vol, "vol", options.DefaultHeatmapVol, "flat implied volatility")
	cmd.Flags().StringVar(&modelName, "model", "black-scholes", "pricing model")
	return cmd
}

func parseFloats(csv string) ([]float64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var values []float64
	for _, field := range strings.Split(csv, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func printFields(fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %v: %v\n", key, fields[key])
	}
}
