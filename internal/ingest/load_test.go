package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const boundaryFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"codregion": 5},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
		}
	]
}`

func writeFixtures(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()

	transactions := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(transactions, []byte(
		"region_id,year,transaction_type\nV,2010,COMPRAVENTA\nV,2011,CESION\n"), 0o644))

	population := filepath.Join(dir, "population.csv")
	require.NoError(t, os.WriteFile(population, []byte(
		"region,a2010,a2011\n5,1800000,1815000\n"), 0o644))

	boundaries := filepath.Join(dir, "regiones.json")
	require.NoError(t, os.WriteFile(boundaries, []byte(boundaryFixture), 0o644))

	australia := filepath.Join(dir, "australia.xlsx")
	f := excelize.NewFile()
	for col, h := range []string{"year", "Total trades", "Población Australia", "Transacciones per capita"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	for col, v := range []any{2010, 8342, 22031750, 0.000378} {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SaveAs(australia))
	require.NoError(t, f.Close())

	return Paths{
		Transactions: transactions,
		Population:   population,
		Australia:    australia,
		Boundaries:   boundaries,
	}
}

func TestLoadAllSources(t *testing.T) {
	paths := writeFixtures(t)

	sources, err := Load(context.Background(), paths)
	require.NoError(t, err)

	assert.Len(t, sources.Transactions, 2)
	assert.Len(t, sources.Population, 2)
	require.Len(t, sources.Australia, 1)
	assert.Equal(t, 2010, sources.Australia[0].Year)
	require.NotNil(t, sources.Boundaries)
	assert.Len(t, sources.Boundaries.Features, 1)
}

func TestLoadMissingFileFailsFast(t *testing.T) {
	paths := writeFixtures(t)
	paths.Population = filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(context.Background(), paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open source file")
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	paths := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
