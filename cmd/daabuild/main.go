// Command daabuild renders the choropleth as static artifacts in one
// synchronous export run. It is the batch counterpart to the dashboard: same
// sources, same figure, but the output lands in the artifact store and the
// process exits. Defaults come from the environment; flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/internal/export/artifact"
	"github.com/jtquiroga/DAA-por-region/internal/export/history"
	"github.com/jtquiroga/DAA-por-region/internal/figure"
	"github.com/jtquiroga/DAA-por-region/internal/ingest"
	"github.com/jtquiroga/DAA-por-region/internal/platform/config"
	"github.com/jtquiroga/DAA-por-region/internal/platform/logger"
	"github.com/jtquiroga/DAA-por-region/internal/rates"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes: 2 invalid usage, 3 source data unusable, 4 export run failed.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// buildFlags holds the parsed flags for the build command. Empty strings mean
// "keep the environment default".
type buildFlags struct {
	transactions string
	population   string
	australia    string
	boundaries   string
	out          string
	driver       string
	formats      []string
	rotation     float64
	verbose      bool
}

func main() {
	root := &cobra.Command{
		Use:     "daabuild",
		Short:   "Render the regional water-right transaction map as static artifacts",
		Version: version,
	}

	var flags buildFlags
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Run one synchronous export of the configured formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runBuild(cmd.Context(), flags, cmd.Flags().Changed("rotate"))
		},
	}

	f := buildCmd.Flags()
	f.StringVar(&flags.transactions, "transactions", "", "Transactions CSV (default $DAA_SOURCE_TRANSACTIONS)")
	f.StringVar(&flags.population, "population", "", "Regional population CSV (default $DAA_SOURCE_POPULATION)")
	f.StringVar(&flags.australia, "australia", "", "Australia comparison workbook (default $DAA_SOURCE_AUSTRALIA)")
	f.StringVar(&flags.boundaries, "boundaries", "", "Region boundary GeoJSON (default $DAA_SOURCE_BOUNDARIES)")
	f.StringVar(&flags.out, "out", "", "Write artifacts under this directory (shorthand for the fs driver)")
	f.StringVar(&flags.driver, "driver", "", "Artifact driver: fs or s3 (default $DAA_ARTIFACT_DRIVER)")
	f.StringSliceVar(&flags.formats, "formats", []string{"html", "geojson"}, "Formats to render: html, json, csv, geojson")
	f.Float64Var(&flags.rotation, "rotate", 90, "Boundary rotation in degrees")
	f.BoolVar(&flags.verbose, "verbose", false, "Log at debug level")

	root.AddCommand(buildCmd)

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func runBuild(ctx context.Context, flags buildFlags, rotationSet bool) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return codeError(2, "configuration: %s", err)
	}
	applyFlags(&cfg, flags, rotationSet)

	formats, err := export.ParseFormats(flags.formats)
	if err != nil {
		return codeError(2, "%s", err)
	}

	log := logger.New(cfg.Log)

	sources, err := ingest.Load(ctx, ingest.Paths{
		Transactions: cfg.Sources.Transactions,
		Population:   cfg.Sources.Population,
		Australia:    cfg.Sources.Australia,
		Boundaries:   cfg.Sources.Boundaries,
	})
	if err != nil {
		return codeError(3, "load source datasets: %s", err)
	}
	log.Info("sources loaded",
		"transactions", sources.TransactionStats.Rows,
		"population", sources.PopulationStats.Rows,
		"australia", sources.AustraliaStats.Rows,
	)

	if err := sources.Boundaries.Clean(); err != nil {
		return codeError(3, "clean region boundaries: %s", err)
	}
	if err := sources.Boundaries.Rotate(cfg.Map.RotationDeg); err != nil {
		return codeError(3, "rotate region boundaries: %s", err)
	}
	figures, err := figure.NewBuilder(sources.Boundaries)
	if err != nil {
		return codeError(3, "prepare figure builder: %s", err)
	}

	panel := rates.Build(sources)
	if panel.Empty() {
		return codeError(3, "no valid transactions in %s, nothing to render", cfg.Sources.Transactions)
	}

	artifacts, err := artifact.Open(ctx, cfg.Artifact)
	if err != nil {
		return codeError(2, "open artifact store: %s", err)
	}
	runs, err := history.Open(ctx, cfg.History)
	if err != nil {
		return codeError(2, "open export history: %s", err)
	}
	defer func() {
		if closer, ok := runs.(io.Closer); ok {
			closer.Close()
		}
	}()

	svc := export.NewService(panel, figures, sources.Boundaries, artifacts, runs, export.WithLogger(log))

	start := time.Now()
	run, err := svc.Build(ctx, formats)
	if err != nil {
		return codeError(4, "export: %s", err)
	}

	fmt.Printf("run %s: %d artifact(s) in %s\n", run.ID, len(run.Artifacts), time.Since(start).Round(time.Millisecond))
	for _, a := range run.Artifacts {
		location := a.Key
		if a.URL != "" {
			location = a.URL
		}
		fmt.Printf("  %-8s %9d bytes  %s\n", a.Format, a.SizeBytes, location)
	}
	return nil
}

// applyFlags folds explicit flags over the environment configuration.
func applyFlags(cfg *config.Config, flags buildFlags, rotationSet bool) {
	if flags.transactions != "" {
		cfg.Sources.Transactions = flags.transactions
	}
	if flags.population != "" {
		cfg.Sources.Population = flags.population
	}
	if flags.australia != "" {
		cfg.Sources.Australia = flags.australia
	}
	if flags.boundaries != "" {
		cfg.Sources.Boundaries = flags.boundaries
	}
	if flags.out != "" {
		cfg.Artifact.Driver = string(artifact.DriverFS)
		cfg.Artifact.FSRoot = flags.out
	}
	if flags.driver != "" {
		cfg.Artifact.Driver = flags.driver
	}
	if rotationSet {
		cfg.Map.RotationDeg = flags.rotation
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
}
