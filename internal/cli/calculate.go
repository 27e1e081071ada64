package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"kumpisahko/internal/cost"
	"kumpisahko/internal/database"
	"kumpisahko/internal/models"
	"kumpisahko/internal/pricing"
	"kumpisahko/internal/repository/postgres"
	"kumpisahko/internal/validation"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

type calculateOptions struct {
	input      string
	pricesFile string
	fixedPrice float64
	indent     bool
}

func newCalculateCmd(root *rootOptions) *cobra.Command {
	opts := &calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Price a consumption file against spot prices",
		Long: `Reads a cost calculation request, the same JSON body the API accepts, and prints the report.
Prices come from the database unless --prices names a JSON array of {"timestamp","price"} records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(cmd.InOrStdin(), opts.input)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fixed-price") {
				req.ConstantPricePerUnit = &opts.fixedPrice
			}
			if err := validateRequest(req, root.cfg.API.MaxConsumptionEntries); err != nil {
				return err
			}

			lookup, closeFn, err := openLookup(root, opts.pricesFile)
			if err != nil {
				return err
			}
			defer closeFn()

			svc := cost.NewService(lookup,
				cost.WithLogger(root.logger),
				cost.WithLookupTimeout(root.cfg.Pricing.LookupTimeout),
			)
			result, err := svc.Calculate(cmd.Context(), req.Intervals(), req.ConstantPricePerUnit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if opts.indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(models.NewCalculateCostResponse(result.Report, result.FixedCost))
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Request file, - for stdin")
	cmd.Flags().StringVar(&opts.pricesFile, "prices", "", "Price file used instead of the database")
	cmd.Flags().Float64Var(&opts.fixedPrice, "fixed-price", 0, "Fixed unit price in c/kWh to compare against")
	cmd.Flags().BoolVar(&opts.indent, "pretty", false, "Indent the JSON output")
	return cmd
}

func readRequest(stdin io.Reader, path string) (*models.CalculateCostRequest, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req models.CalculateCostRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	return &req, nil
}

// validateRequest applies the same binding rules the API enforces
func validateRequest(req *models.CalculateCostRequest, maxEntries int) error {
	v := validator.New()
	v.SetTagName("binding")
	if err := validation.Register(v); err != nil {
		return err
	}
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	if maxEntries > 0 && len(req.Consumption) > maxEntries {
		return fmt.Errorf("invalid request: %d consumption entries exceed the limit of %d", len(req.Consumption), maxEntries)
	}
	return nil
}

func openLookup(root *rootOptions, pricesFile string) (cost.PriceLookup, func(), error) {
	if pricesFile != "" {
		prices, err := readPrices(pricesFile)
		if err != nil {
			return nil, nil, err
		}
		root.logger.Debug().Int("prices", len(prices)).Str("file", pricesFile).Msg("using price file")
		return prices, func() {}, nil
	}

	db, err := database.Connect(root.cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewSpotPriceRepository(db), func() { db.Close() }, nil
}

// staticPrices serves price lookups from records loaded up front
type staticPrices []pricing.PriceRecord

func (s staticPrices) PricesInRange(ctx context.Context, from, to time.Time) ([]pricing.PriceRecord, error) {
	var out []pricing.PriceRecord
	for _, p := range s {
		if !p.Timestamp.Before(from) && !p.Timestamp.After(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func readPrices(path string) (staticPrices, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prices: %w", err)
	}

	var records []models.CreateSpotPriceRequest
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid price file: %w", err)
	}

	prices := make(staticPrices, 0, len(records))
	for i, r := range records {
		if r.Price == nil {
			return nil, fmt.Errorf("invalid price file: record %d has no price", i)
		}
		prices = append(prices, pricing.PriceRecord{Timestamp: r.Timestamp, SpotPrice: *r.Price})
	}
	return prices, nil
}
