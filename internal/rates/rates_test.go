package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtquiroga/DAA-por-region/internal/ingest"
)

func sampleSources() *ingest.Sources {
	return &ingest.Sources{
		Transactions: []ingest.Transaction{
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
			{Region: "V", Year: 2010, Type: "EMBARGO"}, // filtered out
			{Region: "XIII", Year: 2010, Type: "CESION"},
			{Region: "V", Year: 2011, Type: "PERMUTA"},
			{Region: "II", Year: 2011, Type: "LIQUIDACIÓN"}, // no population row
		},
		Population: []ingest.PopulationRow{
			{Region: "V", Year: 2010, Population: 1000000},
			{Region: "XIII", Year: 2010, Population: 5000000},
			{Region: "V", Year: 2011, Population: 1010000},
		},
		Australia: []ingest.AustraliaYear{
			{Year: 2010, Sales: 8000, Population: 20000000, PerCapita: 0.0004},
		},
	}
}

func TestBuildAggregatesAndJoins(t *testing.T) {
	panel := Build(sampleSources())

	require.Len(t, panel.Series, 4)
	assert.Equal(t, []int{2010, 2011}, panel.Years)

	// Series is ordered by year then region code.
	first := panel.Series[0]
	assert.Equal(t, "V", string(first.Region))
	assert.Equal(t, 2010, first.Year)
	assert.Equal(t, 2, first.Sales)
	assert.InDelta(t, 2.0/1000000, first.PerCapita, 1e-12)
	assert.InDelta(t, 2.0/1000000*100000, first.Per100k, 1e-9)
}

func TestBuildZeroPopulationGuard(t *testing.T) {
	panel := Build(sampleSources())

	series2011 := panel.YearSeries(2011)
	require.Len(t, series2011, 2)

	// Region II sold in 2011 but has no population row: rates stay zero.
	regionII := series2011[0]
	assert.Equal(t, "II", string(regionII.Region))
	assert.Equal(t, 1, regionII.Sales)
	assert.Zero(t, regionII.Population)
	assert.Zero(t, regionII.PerCapita)
	assert.Zero(t, regionII.Per100k)
}

func TestBuildGlobalMaxima(t *testing.T) {
	panel := Build(sampleSources())

	// Max per-capita cell is V/2010 at 2 per 1 000 000.
	assert.InDelta(t, 2.0/1000000, panel.MaxPerCapita, 1e-12)
	assert.InDelta(t, 0.2, panel.MaxPer100k, 1e-9)
}

func TestBuildTotals(t *testing.T) {
	panel := Build(sampleSources())

	total2010 := panel.Totals[2010]
	assert.Equal(t, 3, total2010.Sales)
	assert.InDelta(t, 6000000, total2010.Population, 1e-6)
	assert.InDelta(t, 3.0/6000000, total2010.PerCapita, 1e-12)
	require.NotNil(t, total2010.Australia)
	assert.Equal(t, 8000, total2010.Australia.Sales)

	total2011 := panel.Totals[2011]
	assert.Equal(t, 2, total2011.Sales)
	assert.Nil(t, total2011.Australia, "no workbook row for 2011")
}

func TestBuildPopulationWithoutSalesCreatesNoCell(t *testing.T) {
	sources := &ingest.Sources{
		Transactions: []ingest.Transaction{
			{Region: "V", Year: 2010, Type: "COMPRAVENTA"},
		},
		Population: []ingest.PopulationRow{
			{Region: "V", Year: 2010, Population: 100},
			{Region: "IX", Year: 2010, Population: 900000}, // no sales
		},
	}

	panel := Build(sources)
	require.Len(t, panel.Series, 1)
	assert.Equal(t, "V", string(panel.Series[0].Region))
}

func TestBuildEmptyWhenNothingValid(t *testing.T) {
	sources := &ingest.Sources{
		Transactions: []ingest.Transaction{
			{Region: "V", Year: 2010, Type: "EMBARGO"},
		},
	}

	panel := Build(sources)
	assert.True(t, panel.Empty())
	assert.Empty(t, panel.Years)
	assert.False(t, panel.HasYear(2010))
}

func TestYearSeriesUnknownYear(t *testing.T) {
	panel := Build(sampleSources())
	assert.Nil(t, panel.YearSeries(1999))
}
