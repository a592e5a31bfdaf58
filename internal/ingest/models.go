// Package ingest reads the four source files behind the per-capita series:
// the water-right transaction extract, the regional population table, the
// Australia comparison workbook and the boundary GeoJSON. Readers parse and
// normalize; filtering and joining belong to the rates package.
package ingest

import (
	"github.com/jtquiroga/DAA-por-region/internal/geometry"
	"github.com/jtquiroga/DAA-por-region/internal/region"
)

// Transaction is one registry row, region and type already normalized. Rows
// of every transaction type are kept here; the sales filter is applied during
// aggregation.
type Transaction struct {
	Region region.ID
	Year   int
	Type   string
}

// PopulationRow is one (region, year) population observation from the melted
// wide table.
type PopulationRow struct {
	Region     region.ID
	Year       int
	Population float64
}

// AustraliaYear is one row of the comparison workbook. PerCapita comes from
// the workbook itself rather than being recomputed; the national summaries
// use it as published.
type AustraliaYear struct {
	Year       int
	Sales      int
	Population float64
	PerCapita  float64
}

// SourceStats counts what a reader accepted and what it had to skip.
type SourceStats struct {
	Rows    int
	Skipped int
}

// Sources bundles everything a build needs, with per-source read stats for
// startup logging.
type Sources struct {
	Transactions     []Transaction
	TransactionStats SourceStats

	Population      []PopulationRow
	PopulationStats SourceStats

	Australia      []AustraliaYear
	AustraliaStats SourceStats

	Boundaries *geometry.Collection
}

// Paths points at the four source files.
type Paths struct {
	Transactions string
	Population   string
	Australia    string
	Boundaries   string
}
