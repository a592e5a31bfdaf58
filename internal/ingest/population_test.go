package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/jtquiroga/DAA-por-region/pkg/domain-errors"
)

func TestReadPopulationMeltsWideTable(t *testing.T) {
	csv := strings.Join([]string{
		"region,a2010,a2011",
		"1,100000,101000",
		"13,7000000,7100000",
	}, "\n")

	rows, stats, err := ReadPopulation(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, SourceStats{Rows: 2}, stats)
	require.Len(t, rows, 4)

	assert.Equal(t, PopulationRow{Region: "I", Year: 2010, Population: 100000}, rows[0])
	assert.Equal(t, PopulationRow{Region: "I", Year: 2011, Population: 101000}, rows[1])
	assert.Equal(t, PopulationRow{Region: "XIII", Year: 2010, Population: 7000000}, rows[2])
	assert.Equal(t, PopulationRow{Region: "XIII", Year: 2011, Population: 7100000}, rows[3])
}

func TestReadPopulationLastDuplicateWins(t *testing.T) {
	csv := strings.Join([]string{
		"region,a2010",
		"5,100",
		"5,250",
	}, "\n")

	rows, _, err := ReadPopulation(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, PopulationRow{Region: "V", Year: 2010, Population: 250}, rows[0])
}

func TestReadPopulationSkipsEmptyAndBadCells(t *testing.T) {
	csv := strings.Join([]string{
		"region,a2010,a2011",
		"2,,300",
		"3,n/a,400",
	}, "\n")

	rows, stats, err := ReadPopulation(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, PopulationRow{Region: "II", Year: 2011, Population: 300}, rows[0])
	assert.Equal(t, PopulationRow{Region: "III", Year: 2011, Population: 400}, rows[1])
	assert.Equal(t, 1, stats.Skipped, "the unparsable cell counts as skipped")
}

func TestReadPopulationSkipsUnknownRegions(t *testing.T) {
	csv := strings.Join([]string{
		"region,a2010",
		"99,100",
		"4,200",
	}, "\n")

	rows, stats, err := ReadPopulation(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, SourceStats{Rows: 1, Skipped: 1}, stats)
}

func TestReadPopulationRequiresYearColumns(t *testing.T) {
	csv := "region,total\n1,100"

	_, _, err := ReadPopulation(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "aYYYY")
}
