// Package main provides the hrdash binary: an employee analytics backend
// that loads a flat employee CSV and serves filtered views, experience
// distributions and compensation-increment projections.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"hrdash/internal/api"
	"hrdash/internal/config"
	"hrdash/internal/engine"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "hrdash",
		Short:         "Employee analytics backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default hrdash.yaml if present)")

	root.AddCommand(newServeCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if _, err := os.Stat("hrdash.yaml"); err == nil {
		return config.LoadFromFile("hrdash.yaml")
	}
	return config.DefaultConfig(), nil
}

func percentSpec(cfg *config.Config) engine.PercentSpec {
	return engine.PercentSpec{
		Global:     cfg.Increment.DefaultPercent,
		ByName:     cfg.Increment.ByName,
		ByLocation: cfg.Increment.ByLocation,
	}
}

// --- SERVE ---

func newServeCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (dataset loads in the background)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Data.Path = dataPath
			}

			buckets, err := engine.NewBucketSet(cfg.Buckets)
			if err != nil {
				return err
			}

			e := echo.New()
			e.Use(middleware.CORS())
			e.Use(middleware.Recover())
			e.Use(middleware.Logger())

			// The API is live immediately and answers 503 until the
			// background load publishes the store.
			h := api.NewHandler(buckets, percentSpec(cfg))
			h.RegisterRoutes(e)

			go func() {
				t0 := time.Now()
				store, report, err := engine.LoadFile(cfg.Data.Path)
				if err != nil {
					log.Fatalf("BACKGROUND: load failed: %v", err)
				}
				logIssues(report)
				h.SetStore(store, report)
				log.Printf("BACKGROUND: dataset ready in %v. API fully ready.", time.Since(t0))
			}()

			log.Printf("Server ready on %s (data loading in background...)", cfg.Server.Addr)
			e.Logger.Fatal(e.Start(cfg.Server.Addr))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "employee CSV path (overrides config)")
	return cmd
}

// --- EXPORT ---

func newExportCmd() *cobra.Command {
	var (
		in, out    string
		columns    string
		role, loc  string
		activeOnly bool
		increment  bool
		percent    float64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "One-shot pipeline: load, filter, optionally increment, write CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if in == "" {
				in = cfg.Data.Path
			}

			store, report, err := engine.LoadFile(in)
			if err != nil {
				return err
			}
			logIssues(report)

			records := engine.Filter(store.Records(), engine.Criteria{
				ActiveOnly: activeOnly,
				Role:       role,
				Location:   loc,
			})

			if increment || cmd.Flags().Changed("percent") {
				spec := percentSpec(cfg)
				if cmd.Flags().Changed("percent") {
					spec.Global = percent
				}
				var warnings []engine.RangeWarning
				records, warnings = engine.ApplyIncrement(records, spec)
				for _, w := range warnings {
					log.Printf("WARNING: %s", w)
				}
			}

			var cols []string
			if columns != "" {
				cols = strings.Split(columns, ",")
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := engine.WriteCSV(f, records, cols); err != nil {
				return err
			}
			log.Printf("Exported %d records to %s", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input CSV (defaults to data.path from config)")
	cmd.Flags().StringVar(&out, "out", "export.csv", "output CSV path")
	cmd.Flags().StringVar(&columns, "columns", "", "comma-separated output columns (default: standard projection)")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "keep active employees only")
	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	cmd.Flags().StringVar(&loc, "location", "", "filter by location")
	cmd.Flags().BoolVar(&increment, "increment", false, "apply the configured default increment before export")
	cmd.Flags().Float64Var(&percent, "percent", 0, "apply this global increment percentage before export")
	return cmd
}

func logIssues(report *engine.LoadReport) {
	for _, issue := range report.Issues {
		log.Printf("skipped %v", issue)
	}
}
