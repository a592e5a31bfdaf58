package ingest

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jtquiroga/DAA-por-region/internal/geometry"
	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

// Load reads all four sources concurrently with shared cancellation: the
// first failure cancels the rest. Geometry comes back as decoded from the
// file; cleaning and rotation are the caller's pipeline steps.
func Load(ctx context.Context, paths Paths) (*Sources, error) {
	g, ctx := errgroup.WithContext(ctx)
	sources := &Sources{}

	g.Go(func() error {
		return readFile(ctx, paths.Transactions, func(f *os.File) error {
			rows, stats, err := ReadTransactions(f)
			if err != nil {
				return err
			}
			sources.Transactions = rows
			sources.TransactionStats = stats
			return nil
		})
	})

	g.Go(func() error {
		return readFile(ctx, paths.Population, func(f *os.File) error {
			rows, stats, err := ReadPopulation(f)
			if err != nil {
				return err
			}
			sources.Population = rows
			sources.PopulationStats = stats
			return nil
		})
	})

	g.Go(func() error {
		return readFile(ctx, paths.Australia, func(f *os.File) error {
			rows, stats, err := ReadAustralia(f)
			if err != nil {
				return err
			}
			sources.Australia = rows
			sources.AustraliaStats = stats
			return nil
		})
	})

	g.Go(func() error {
		return readFile(ctx, paths.Boundaries, func(f *os.File) error {
			boundaries, err := geometry.Decode(f)
			if err != nil {
				return err
			}
			sources.Boundaries = boundaries
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// readFile opens path and hands it to parse, honoring context cancellation
// before starting the read.
func readFile(ctx context.Context, path string, parse func(*os.File) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "open source file")
	}
	defer f.Close()
	return parse(f)
}
